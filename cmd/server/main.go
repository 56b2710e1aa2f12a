package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/mqtt"
	redisclient "github.com/auralis-io/auralis/internal/redis"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	env := LoadEnvironment()

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(db.DB)

	if env.RedisAddress != "" {
		redisclient.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	// the command publisher is optional; without a broker the admin API
	// still works, remote-control pushes are just dropped
	var publisher *mqtt.Publisher
	if env.MQTTBrokerURL != "" {
		var err error
		publisher, err = mqtt.NewPublisher(env.MQTTBrokerURL, "auralis-server")
		if err != nil {
			log.Error().Err(err).Msg("mqtt connect failed, remote control disabled")
		} else {
			defer publisher.Close()
		}
	}

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	RegisterRoutes(r, env, store, publisher)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
