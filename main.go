package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"survey_questionnaire_builder/generator"
	"survey_questionnaire_builder/server"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	addr := flag.String("addr", "", "http listen address (overrides config.server_addr)")
	mode := flag.String("mode", "", "questionnaire schema: labeled or unlabeled (overrides config.mode)")
	mock := flag.Bool("mock", false, "use the offline mock LLM")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	// Credential may live in a local .env; absence is fine.
	_ = godotenv.Load()

	log, err := buildLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		log.Fatalw("load config", "err", err)
	}
	cfg.ApplyDefaults()
	if *addr != "" {
		cfg.ServerAddr = *addr
	}
	if *mode != "" {
		cfg.Mode = *mode
	}

	llm, err := buildLLM(cfg, *mock)
	if err != nil {
		log.Fatalw("build llm", "err", err)
	}
	agent, err := generator.NewAgent(llm, generator.Mode(cfg.Mode))
	if err != nil {
		log.Fatalw("build agent", "err", err)
	}
	srv, err := server.New(agent, cfg, log)
	if err != nil {
		log.Fatalw("build server", "err", err)
	}

	log.Infow("starting web server", "addr", cfg.ServerAddr, "provider", cfg.LLM.Provider, "mode", cfg.Mode)
	if err := http.ListenAndServe(cfg.ServerAddr, srv.Routes()); err != nil {
		log.Fatalw("serve", "err", err)
	}
}

func buildLogger(verbose bool) (*zap.SugaredLogger, error) {
	var zcfg zap.Config
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func buildLLM(cfg server.Config, mock bool) (generator.LLMClient, error) {
	if mock {
		return generator.MockLLM{Mode: generator.Mode(cfg.Mode)}, nil
	}
	settings := &generator.LLMSettings{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		RelayURL:    cfg.LLM.RelayURL,
		Temperature: cfg.LLM.Temperature,
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible interface; base_url is required.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "relay":
		// Credential stays on a separate relay process; we only need its URL.
		return generator.NewRelayLLMFromConfig(settings)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
