package main

import (
	"log"
	"os"
	"path/filepath"
)

type Environment struct {
	ServerURL   string
	PairingCode string
	DeviceID    string

	PrefsPath string
	MPVBinary string
	MPVSocket string

	MQTTBrokerURL string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		ServerURL:   os.Getenv("SERVER_URL"),
		PairingCode: os.Getenv("PAIRING_CODE"),
		DeviceID:    os.Getenv("DEVICE_ID"),

		PrefsPath: os.Getenv("PREFS_PATH"),
		MPVBinary: os.Getenv("MPV_BINARY"),
		MPVSocket: os.Getenv("MPV_SOCKET"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
	}

	if env.PrefsPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		env.PrefsPath = filepath.Join(home, ".auralis", "prefs.json")
	}
	if env.MPVSocket == "" {
		env.MPVSocket = "/tmp/auralis-mpv.sock"
	}

	if env.ServerURL == "" {
		log.Fatal("SERVER_URL is required")
	}
	if env.DeviceID == "" {
		host, err := os.Hostname()
		if err != nil {
			log.Fatal("DEVICE_ID is required when the hostname is unavailable")
		}
		env.DeviceID = host
	}

	return env
}
