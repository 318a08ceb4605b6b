package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hdbank-ai/card-advisor/internal/cache"
	"github.com/hdbank-ai/card-advisor/internal/config"
	"github.com/hdbank-ai/card-advisor/internal/corpus"
	"github.com/hdbank-ai/card-advisor/internal/embedding"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the advisor environment",
	Long:  "Checks configuration, corpus, embedding endpoint and cache connectivity.",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	bold := color.New(color.Bold)

	bold.Println("=== Card Advisor Diagnosis ===")
	failures := 0

	fmt.Println("\n1. Configuration:")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		bad.Printf("   FAIL: %v\n", err)
		return fmt.Errorf("configuration unusable, aborting remaining checks")
	}
	ok.Printf("   OK: corpus=%s cards=%d threshold=%.2f\n",
		cfg.Corpus.Path, len(cfg.Corpus.Cards), cfg.Retrieval.AcceptanceThreshold)

	fmt.Println("\n2. Corpus:")
	corp, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		bad.Printf("   FAIL: %v\n", err)
		failures++
	} else {
		ok.Printf("   OK: %d QA pairs (%s, v%s)\n", corp.Len(), corp.Info.Language, corp.Info.Version)
	}

	fmt.Println("\n3. Embedding endpoint:")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if cfg.Embedding.Mock {
		ok.Println("   OK: mock embedder enabled (no endpoint required)")
	} else {
		client, err := embedding.NewClient(embedding.Config{
			BaseURL:   cfg.Embedding.BaseURL,
			Model:     cfg.Embedding.Model,
			Dimension: cfg.Embedding.Dimension,
			Timeout:   cfg.Embedding.Timeout,
		})
		if err != nil {
			bad.Printf("   FAIL: %v\n", err)
			failures++
		} else if v, err := client.EmbedSingle(ctx, "xin chào"); err != nil {
			bad.Printf("   FAIL: probe embed: %v\n", err)
			failures++
		} else {
			ok.Printf("   OK: model=%s dimension=%d\n", client.Model(), len(v))
		}
	}

	fmt.Println("\n4. Cache:")
	if cfg.Cache.Driver == "redis" {
		rc, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			bad.Printf("   FAIL: %v\n", err)
			failures++
		} else {
			ok.Printf("   OK: redis at %s\n", cfg.Cache.Redis.Addr)
			_ = rc.Close()
		}
	} else {
		ok.Printf("   OK: in-memory cache (max %d entries)\n", cfg.Cache.MaxEntries)
	}

	fmt.Println()
	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	bold.Println("All checks passed.")
	return nil
}
