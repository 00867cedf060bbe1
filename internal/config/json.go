package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		LogFile string `json:"log_file"`
		Role    string `json:"role"`
	} `json:"app,omitempty"`

	Storage struct {
		DataDir   string `json:"data_dir"`
		UsersFile string `json:"users_file"`
		MetaDSN   string `json:"meta_dsn"`
	} `json:"storage,omitempty"`

	Scheduler struct {
		LeechThreshold int `json:"leech_threshold"`
	} `json:"scheduler,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogFile: jsonCfg.App.LogFile,
			Role:    jsonCfg.App.Role,
		},
		Storage: Storage{
			DataDir:   jsonCfg.Storage.DataDir,
			UsersFile: jsonCfg.Storage.UsersFile,
			MetaDSN:   jsonCfg.Storage.MetaDSN,
		},
		Scheduler: Scheduler{
			LeechThreshold: jsonCfg.Scheduler.LeechThreshold,
		},
	}

	return cfg, nil
}
