// Command seeder fills a running coach API with simulated matches.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openmohaa/coach-api/internal/models"
)

var (
	apiURL string
	count  int
	modes  []string
	maps   []string
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Post simulated matches to a coach API",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&apiURL, "api", "http://localhost:8080/api", "API base URL")
	rootCmd.Flags().IntVarP(&count, "count", "n", 10, "Number of matches to simulate")
	rootCmd.Flags().StringSliceVar(&modes, "modes", []string{"Solo", "Battle Royale", "Team Deathmatch"}, "Game modes to cycle through")
	rootCmd.Flags().StringSliceVar(&maps, "maps", []string{"Erangel", "Miramar", "Sanhok", "Vikendi"}, "Maps to cycle through")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if len(modes) == 0 || len(maps) == 0 {
		return fmt.Errorf("at least one mode and one map are required")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	client := &http.Client{Timeout: 5 * time.Second}
	endpoint := strings.TrimRight(apiURL, "/") + "/simulate-match"

	failed := 0
	for i := 0; i < count; i++ {
		req := models.SimulateMatchRequest{
			GameMode: modes[i%len(modes)],
			MapName:  maps[i%len(maps)],
		}

		resp, err := simulate(client, endpoint, req)
		if err != nil {
			log.Warnw("Simulation failed", "error", err, "game_mode", req.GameMode, "map_name", req.MapName)
			failed++
			continue
		}
		log.Infow("Match simulated", "match_id", resp.MatchID, "overall_score", resp.OverallScore, "game_mode", req.GameMode, "map_name", req.MapName)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d simulations failed", failed, count)
	}
	return nil
}

func simulate(client *http.Client, endpoint string, req models.SimulateMatchRequest) (*models.SimulateMatchResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpResp, err := client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", httpResp.Status)
	}

	var resp models.SimulateMatchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}
