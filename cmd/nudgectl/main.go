package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clintrovert/nudgebot/internal/clickup"
	"github.com/clintrovert/nudgebot/internal/config"
	"github.com/clintrovert/nudgebot/internal/fetcher"
	"github.com/clintrovert/nudgebot/internal/generator"
	"github.com/clintrovert/nudgebot/pkg/types"
)

var (
	// Used for flags.
	listID          string
	listName        string
	listType        string
	fallbackMode    string
	defaultMention  string
	listConfigPath  string
	userMappingPath string

	rootCmd = &cobra.Command{
		Use:   "nudgectl",
		Short: "Manage the reminder bot's list and user-mapping configuration.",
	}

	listsCmd = &cobra.Command{
		Use:   "lists",
		Short: "Manage tracked ClickUp lists.",
	}

	listsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the current list configuration.",
		RunE:  runListsShow,
	}

	listsAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Add a list manually.",
		RunE:  runListsAdd,
	}

	listsToggleCmd = &cobra.Command{
		Use:   "toggle",
		Short: "Enable or disable a list by id.",
		RunE:  runListsToggle,
	}

	listsDiscoverCmd = &cobra.Command{
		Use:   "discover",
		Short: "Discover sprint lists for the configured team and merge them into the config.",
		RunE:  runListsDiscover,
	}

	usersCmd = &cobra.Command{
		Use:   "users",
		Short: "Manage ClickUp-to-Slack user mappings.",
	}

	usersShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the current user mappings.",
		RunE:  runUsersShow,
	}

	usersMapCmd = &cobra.Command{
		Use:   "map <clickup-user> <slack-user-or-id>",
		Short: "Add or update a mapping.",
		Args:  cobra.ExactArgs(2),
		RunE:  runUsersMap,
	}

	usersRemoveCmd = &cobra.Command{
		Use:   "remove <clickup-user>",
		Short: "Remove a mapping.",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsersRemove,
	}

	usersSettingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Update fallback behavior and default mention.",
		RunE:  runUsersSettings,
	}

	usersTestCmd = &cobra.Command{
		Use:   "test <clickup-user>",
		Short: "Show the mention a ClickUp user would resolve to.",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsersTest,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&listConfigPath, "config", "clickup_config.json", "Path to the list configuration file.")
	rootCmd.PersistentFlags().StringVar(&userMappingPath, "mappings", "user_mapping.json", "Path to the user mapping file.")

	listsAddCmd.Flags().StringVar(&listID, "id", "", "ClickUp list id (required).")
	listsAddCmd.Flags().StringVar(&listName, "name", "", "Display name for the list.")
	listsAddCmd.Flags().StringVar(&listType, "type", "general", "List type: sprint, feature, bug or general.")
	listsToggleCmd.Flags().StringVar(&listID, "id", "", "ClickUp list id (required).")

	usersSettingsCmd.Flags().StringVar(&fallbackMode, "fallback", "", "Fallback behavior: use_source_name or use_default.")
	usersSettingsCmd.Flags().StringVar(&defaultMention, "default-mention", "", "Default mention, e.g. @channel or @here.")

	listsCmd.AddCommand(listsShowCmd, listsAddCmd, listsToggleCmd, listsDiscoverCmd)
	usersCmd.AddCommand(usersShowCmd, usersMapCmd, usersRemoveCmd, usersSettingsCmd, usersTestCmd)
	rootCmd.AddCommand(listsCmd, usersCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runListsShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadListConfig(listConfigPath)
	if err != nil {
		return err
	}
	if len(cfg.Lists) == 0 {
		cmd.Println("No lists configured.")
		return nil
	}

	cmd.Printf("Configured lists (%d):\n", len(cfg.Lists))
	for i, l := range cfg.Lists {
		status := "enabled"
		if !l.Enabled {
			status = "disabled"
		}
		cmd.Printf("%2d. %s\n    id=%s type=%s %s\n", i+1, l.Name, l.ID, l.Type, status)
		if l.Discovered {
			cmd.Printf("    auto-discovered %s\n", l.DiscoveryDate)
		}
	}
	return nil
}

func runListsAdd(cmd *cobra.Command, args []string) error {
	if listID == "" {
		return fmt.Errorf("--id is required")
	}

	cfg, err := config.LoadListConfig(listConfigPath)
	if err != nil {
		return err
	}
	for _, l := range cfg.Lists {
		if l.ID == listID {
			return fmt.Errorf("list %s already configured as %q", listID, l.Name)
		}
	}

	name := listName
	if name == "" {
		name = "List " + listID
	}
	cfg.Lists = append(cfg.Lists, types.TrackedList{
		ID:      listID,
		Name:    name,
		Type:    types.ParseListType(listType),
		Enabled: true,
	})

	if err := config.SaveListConfig(listConfigPath, cfg); err != nil {
		return err
	}
	cmd.Printf("Added %s list %q (%s)\n", types.ParseListType(listType), name, listID)
	return nil
}

func runListsToggle(cmd *cobra.Command, args []string) error {
	if listID == "" {
		return fmt.Errorf("--id is required")
	}

	cfg, err := config.LoadListConfig(listConfigPath)
	if err != nil {
		return err
	}
	for i := range cfg.Lists {
		if cfg.Lists[i].ID != listID {
			continue
		}
		cfg.Lists[i].Enabled = !cfg.Lists[i].Enabled
		if err := config.SaveListConfig(listConfigPath, cfg); err != nil {
			return err
		}
		state := "disabled"
		if cfg.Lists[i].Enabled {
			state = "enabled"
		}
		cmd.Printf("List %q is now %s\n", cfg.Lists[i].Name, state)
		return nil
	}
	return fmt.Errorf("no configured list with id %s", listID)
}

func runListsDiscover(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("CLICKUP_API_KEY")
	teamID := os.Getenv("CLICKUP_TEAM_ID")
	if apiKey == "" || teamID == "" {
		return fmt.Errorf("CLICKUP_API_KEY and CLICKUP_TEAM_ID must be set")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.LoadListConfig(listConfigPath)
	if err != nil {
		return err
	}

	f := fetcher.New(clickup.NewClient(apiKey, logger), config.Config{
		ClickUpAPIKey:  apiKey,
		ClickUpTeamID:  teamID,
		ListConfigFile: listConfigPath,
	}, logger)

	discovered, err := f.DiscoverSprints(context.Background(), cfg.Discovery)
	if err != nil {
		return err
	}

	merged, added := fetcher.MergeDiscovered(cfg, discovered)
	if added == 0 {
		cmd.Println("No new sprint lists found.")
		return nil
	}
	if err := config.SaveListConfig(listConfigPath, merged); err != nil {
		return err
	}
	cmd.Printf("Added %d new sprint lists:\n", added)
	for _, d := range discovered {
		cmd.Printf("  + %s (%s)\n", d.Name, d.ID)
	}
	return nil
}

func runUsersShow(cmd *cobra.Command, args []string) error {
	mappings, err := config.LoadUserMappings(userMappingPath)
	if err != nil {
		return err
	}

	cmd.Printf("Fallback behavior: %s\n", mappings.FallbackBehavior)
	cmd.Printf("Default mention:   %s\n", mappings.DefaultMention)
	if len(mappings.Mappings) == 0 {
		cmd.Println("No user mappings configured.")
		return nil
	}
	cmd.Printf("Mappings (%d):\n", len(mappings.Mappings))
	for source, target := range mappings.Mappings {
		cmd.Printf("  %s -> %s\n", source, target)
	}
	return nil
}

func runUsersMap(cmd *cobra.Command, args []string) error {
	mappings, err := config.LoadUserMappings(userMappingPath)
	if err != nil {
		return err
	}
	mappings.Mappings[args[0]] = args[1]
	if err := config.SaveUserMappings(userMappingPath, mappings); err != nil {
		return err
	}
	cmd.Printf("Mapped %s -> %s\n", args[0], args[1])
	return nil
}

func runUsersRemove(cmd *cobra.Command, args []string) error {
	mappings, err := config.LoadUserMappings(userMappingPath)
	if err != nil {
		return err
	}
	if _, ok := mappings.Mappings[args[0]]; !ok {
		return fmt.Errorf("no mapping for %s", args[0])
	}
	delete(mappings.Mappings, args[0])
	if err := config.SaveUserMappings(userMappingPath, mappings); err != nil {
		return err
	}
	cmd.Printf("Removed mapping for %s\n", args[0])
	return nil
}

func runUsersSettings(cmd *cobra.Command, args []string) error {
	mappings, err := config.LoadUserMappings(userMappingPath)
	if err != nil {
		return err
	}

	switch fallbackMode {
	case "":
	case string(types.FallbackSourceName), "use_clickup_name":
		mappings.FallbackBehavior = types.FallbackSourceName
	case string(types.FallbackDefault):
		mappings.FallbackBehavior = types.FallbackDefault
	default:
		return fmt.Errorf("unknown fallback behavior %q", fallbackMode)
	}
	if defaultMention != "" {
		mappings.DefaultMention = defaultMention
	}

	if err := config.SaveUserMappings(userMappingPath, mappings); err != nil {
		return err
	}
	cmd.Printf("Fallback behavior: %s, default mention: %s\n",
		mappings.FallbackBehavior, mappings.DefaultMention)
	return nil
}

func runUsersTest(cmd *cobra.Command, args []string) error {
	mappings, err := config.LoadUserMappings(userMappingPath)
	if err != nil {
		return err
	}
	mention := generator.NewMentionResolver(mappings).Resolve(args[0])
	cmd.Printf("%s resolves to %s\n", args[0], mention)
	return nil
}
