package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"CO-PO-Mapping-Backend/internal/api"
	"CO-PO-Mapping-Backend/internal/repository"
	"CO-PO-Mapping-Backend/internal/router"
	"CO-PO-Mapping-Backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("COPO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", ":8000")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "CO-PO")
	viper.SetDefault("ai.model", "gemini-2.0-flash")
	viper.SetDefault("ai.timeout_seconds", 45)
	viper.SetDefault("uploads.dir", "uploads/syllabus")
	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("warning: config.yaml not found, relying on environment variables")
		} else {
			log.Fatalf("reading config file failed: %s", err)
		}
	}

	apiKey := viper.GetString("ai.api_key")
	if apiKey == "" {
		log.Fatal("AI API key is not configured (ai.api_key / COPO_AI_API_KEY)")
	}

	db, shutdown, err := repository.Connect(viper.GetString("mongo.uri"), viper.GetString("mongo.database"))
	if err != nil {
		log.Fatalf("connecting to document store failed: %s", err)
	}
	defer shutdown()

	ctx := context.Background()
	aiService, err := service.NewAIService(ctx, apiKey, viper.GetString("ai.model"), viper.GetInt("ai.timeout_seconds"))
	if err != nil {
		log.Fatalf("initializing AI client failed: %s", err)
	}
	defer aiService.Close()

	prompts := service.NewPromptBuilder()
	parser := service.NewResponseParser()
	extractor := service.NewQuestionExtractor()

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	syllabusRepo := repository.NewSyllabusRepository(db)
	mappingRepo := repository.NewMappingRepository(db)

	authHandler := api.NewAuthHandler(userRepo)
	mappingHandler := api.NewMappingHandler(prompts, aiService, parser, mappingRepo)
	examHandler := api.NewExamHandler(subjectRepo, prompts, aiService, parser, extractor)
	subjectHandler := api.NewSubjectHandler(subjectRepo, syllabusRepo, viper.GetString("uploads.dir"))

	r := router.SetupRouter(authHandler, mappingHandler, examHandler, subjectHandler, viper.GetStringSlice("cors.allowed_origins"))

	serverPort := viper.GetString("server.port")
	fmt.Printf("Server listening on http://localhost%s\n", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("server failed to start: %s", err)
	}
}
