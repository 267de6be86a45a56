package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Hold percentages as decimal strings, e.g. "80" and "3.5".
	HoldPercentage   string
	ChargePercentage string

	PaymentBaseURL string
	PaymentAPIKey  string

	// Six-field cron expression for the top-up reconciliation job.
	TopupReconciliationSchedule string
}
