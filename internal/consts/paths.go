package consts

import (
	"os"
	"path/filepath"
)

const (
	HomeDirName    = ".sessiond"
	ConfigFileName = "config.yaml"
	LogFileName    = "sessiond.log"
)

func HomeDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, HomeDirName)
}

func DefaultConfigPath() string {
	return filepath.Join(HomeDir(), ConfigFileName)
}

func DefaultLogFile() string {
	return filepath.Join(HomeDir(), "logs", LogFileName)
}
