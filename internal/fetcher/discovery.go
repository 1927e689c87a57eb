package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clintrovert/nudgebot/internal/config"
	"github.com/clintrovert/nudgebot/pkg/types"
)

// sprintIndicators flag a folder as holding sprint lists. Overridden
// by discovery_settings.include_folders in the config file.
var sprintIndicators = []string{
	"sprint", "iteration", "pi ", "program increment",
	"release", "milestone", "cycle", "wave",
}

// discoverAndMerge walks the team's spaces for sprint lists and merges
// anything new into the list config file.
func (f *Fetcher) discoverAndMerge(ctx context.Context) error {
	listCfg, err := config.LoadListConfig(f.cfg.ListConfigFile)
	if err != nil {
		return err
	}

	discovered, err := f.DiscoverSprints(ctx, listCfg.Discovery)
	if err != nil {
		return err
	}

	merged, added := MergeDiscovered(listCfg, discovered)
	if added == 0 {
		f.logger.Info("no new sprint lists discovered")
		return nil
	}

	if err := config.SaveListConfig(f.cfg.ListConfigFile, merged); err != nil {
		return err
	}
	f.logger.Info("added discovered sprint lists to config",
		zap.Int("added", added),
		zap.String("file", f.cfg.ListConfigFile),
	)
	return nil
}

// DiscoverSprints walks spaces, folders and lists for the configured
// team and returns every list under a sprint-looking folder, after
// applying the exclude filters. Walk errors below the space level are
// logged and skipped so one broken folder cannot hide the rest.
func (f *Fetcher) DiscoverSprints(ctx context.Context, settings config.DiscoverySettings) ([]types.TrackedList, error) {
	include := settings.IncludeFolders
	if len(include) == 0 {
		include = sprintIndicators
	}
	excludeFolders := settings.ExcludeFolders
	if len(excludeFolders) == 0 {
		excludeFolders = config.DefaultExcludePatterns
	}
	excludeLists := settings.ExcludeListNames
	if len(excludeLists) == 0 {
		excludeLists = config.DefaultExcludePatterns
	}

	spaces, err := f.client.Spaces(ctx, f.cfg.ClickUpTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to discover sprints: %w", err)
	}

	var found []types.TrackedList
	for _, space := range spaces {
		if matchesAny(space.Name, excludeFolders) {
			f.logger.Debug("excluding space", zap.String("space", space.Name))
			continue
		}

		folders, err := f.client.Folders(ctx, space.ID)
		if err != nil {
			f.logger.Warn("failed to list folders",
				zap.String("space", space.Name),
				zap.Error(err),
			)
			continue
		}

		for _, folder := range folders {
			if matchesAny(folder.Name, excludeFolders) || !matchesAny(folder.Name, include) {
				continue
			}

			lists, err := f.client.FolderLists(ctx, folder.ID)
			if err != nil {
				f.logger.Warn("failed to list folder contents",
					zap.String("folder", folder.Name),
					zap.Error(err),
				)
				continue
			}

			for _, list := range lists {
				fullName := fmt.Sprintf("%s - %s - %s", space.Name, folder.Name, list.Name)
				if matchesAny(fullName, excludeLists) {
					continue
				}
				found = append(found, types.TrackedList{
					ID:            list.ID,
					Name:          fullName,
					Type:          types.ListTypeSprint,
					Enabled:       true,
					Space:         space.Name,
					Folder:        folder.Name,
					Discovered:    true,
					DiscoveryDate: f.now().Format(time.RFC3339),
				})
			}
		}
	}

	f.logger.Info("sprint discovery complete",
		zap.String("team_id", f.cfg.ClickUpTeamID),
		zap.Int("found", len(found)),
	)
	return found, nil
}

// MergeDiscovered adds discovered lists not already present, keyed by
// list id. Existing entries are never touched, so the merge is
// idempotent.
func MergeDiscovered(cfg config.ListConfig, discovered []types.TrackedList) (config.ListConfig, int) {
	known := make(map[string]bool, len(cfg.Lists))
	for _, l := range cfg.Lists {
		known[l.ID] = true
	}

	added := 0
	for _, d := range discovered {
		if known[d.ID] {
			continue
		}
		known[d.ID] = true
		cfg.Lists = append(cfg.Lists, d)
		added++
	}
	return cfg, added
}

func matchesAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
