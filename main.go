// @title Live Polling System API
// @version 1.0
// @description Backend API for a server-authoritative live poll: lifecycle, voting, participants and real-time broadcast

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token
package main

import (
	_ "github.com/alex-pricope/live-polling-system/docs"

	"github.com/alex-pricope/live-polling-system/api"
	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/spf13/viper"
)

func main() {
	logging.BoostrapLogger()

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()

	// Start the service
	service := api.NewServer(config)
	service.Start()
}
