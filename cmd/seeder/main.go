package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/locvowork/payroll_report_sample/internal/bootstrap"
	"github.com/locvowork/payroll_report_sample/internal/database"
	"github.com/locvowork/payroll_report_sample/internal/logger"
)

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	flag.Parse()

	ctx := context.Background()

	fmt.Println("🚀 Payroll Data Seeder")
	fmt.Println(strings.Repeat("=", 50))

	fmt.Println("📡 Initializing application...")
	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
		log.Fatal(err)
	}
	defer app.DB.Close()

	seeder := database.NewDataSeeder(app.DB)

	switch *action {
	case "seed":
		if err := seeder.SeedData(ctx); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}

	case "clear":
		performClear(ctx, seeder)

	default:
		fmt.Printf("❌ Unknown action: %s\n", *action)
		flag.PrintDefaults()
	}

	fmt.Println("\n✅ Done!")
}

func performClear(ctx context.Context, seeder *database.DataSeeder) {
	fmt.Println("⚠️  This will delete all payroll data!")
	fmt.Print("Continue? (yes/no): ")

	var response string
	fmt.Scanln(&response)

	if response == "yes" {
		if err := seeder.ClearData(ctx); err != nil {
			log.Fatalf("❌ Clear failed: %v", err)
		}
	} else {
		fmt.Println("Cancelled.")
	}
}
