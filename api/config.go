package api

import (
	"sync"

	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	PollConfig
}

type StorageConfig struct {
	TableNamePolls        string
	TableNameVotes        string
	TableNameParticipants string
	InMemory              bool
}

type ServerConfig struct {
	Port int
}

type PollConfig struct {
	// CountdownTicks is the number of 1s results-countdown broadcasts
	// after a poll closes before the transition back to IDLE.
	CountdownTicks int
	HistoryLimit   int
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			TableNamePolls:        viper.GetString("storage.TableNamePolls"),
			TableNameVotes:        viper.GetString("storage.TableNameVotes"),
			TableNameParticipants: viper.GetString("storage.TableNameParticipants"),
			InMemory:              viper.GetBool("storage.InMemory"),
		},
		ServerConfig: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
		PollConfig: PollConfig{
			CountdownTicks: getIntOrDefault("poll.countdownTicks", 5),
			HistoryLimit:   getIntOrDefault("poll.historyLimit", 50),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
