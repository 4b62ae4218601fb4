// Command scorestats prints per-metric score averages from the ClickHouse
// analytics table filled by the coach worker pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dsn := flag.String("dsn", os.Getenv("CLICKHOUSE_URL"), "ClickHouse DSN")
	mapName := flag.String("map", "", "Only include matches on this map")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("a ClickHouse DSN is required (-dsn or CLICKHOUSE_URL)")
	}

	opts, err := clickhouse.ParseDSN(*dsn)
	if err != nil {
		log.Fatal(err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	query := `
		SELECT category, metric, count() AS samples, avg(score) AS mean, min(score), max(score)
		FROM coach.metric_scores
		WHERE (? = '' OR map_name = ?)
		GROUP BY category, metric
		ORDER BY category, metric
	`
	rows, err := conn.Query(ctx, query, *mapName, *mapName)
	if err != nil {
		log.Fatal(err)
	}
	defer rows.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tMETRIC\tSAMPLES\tMEAN\tMIN\tMAX")
	for rows.Next() {
		var (
			category, metric string
			samples          uint64
			mean, lo, hi     float64
		)
		if err := rows.Scan(&category, &metric, &samples, &mean, &lo, &hi); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.2f\t%.2f\n", category, metric, samples, mean, lo, hi)
	}
	if err := rows.Err(); err != nil {
		log.Fatal(err)
	}
	w.Flush()
}
