package settings

import (
	"encoding/json"

	"github.com/spf13/afero"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
)

// Sample returns the settings document written by init-settings: a small
// set of filters covering the common cleanup jobs.
func Sample() *Store {
	return &Store{
		Version: SupportedVersion,
		Filters: []Filter{
			{
				ID: "vanilla",
				RemovedPrefabs: []string{
					"assets/prefabs/npc/autoturret/*",
					"assets/prefabs/npc/flame turret/*",
					"assets/prefabs/npc/sam_site_turret/*",
					"assets/prefabs/deployable/single shot trap/guntrap.deployed.prefab",
					"assets/prefabs/deployable/landmine/landmine.prefab",
				},
				SwitchedOffPrefabs: []string{
					"assets/prefabs/deployable/search light/searchlight.deployed.prefab",
					"assets/prefabs/deployable/playerioents/igniter/igniter.deployed.prefab",
				},
			},
			{
				ID: "defense-off",
				SwitchedOffPrefabs: []string{
					"assets/prefabs/npc/autoturret/*",
					"assets/prefabs/npc/flame turret/*",
					"assets/prefabs/deployable/search light/searchlight.deployed.prefab",
				},
			},
			{
				ID: "strip-loot",
				RemovedItemsFromPrefabs: []string{
					"assets/prefabs/deployable/large wood storage/*",
					"assets/prefabs/deployable/woodenbox/*",
					"assets/prefabs/deployable/locker/locker.deployed.prefab",
					"assets/prefabs/deployable/fridge/fridge.deployed.prefab",
				},
			},
		},
	}
}

// WriteSample writes the sample settings document to path. It refuses to
// touch an existing file or directory.
func WriteSample(fs afero.Fs, path string) error {
	if exists, err := afero.Exists(fs, path); err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot probe %s", path)
	} else if exists {
		return errors.Newf(errors.ErrFileExists, "%s already exists; refusing to replace it", path)
	}

	data, err := json.MarshalIndent(Sample(), "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot serialize sample settings")
	}
	data = append(data, '\n')

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return nil
}
