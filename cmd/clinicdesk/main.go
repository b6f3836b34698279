package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/pricing"
	"github.com/clinicdesk/clinicdesk/internal/registry"
	"github.com/clinicdesk/clinicdesk/internal/seed"
	"github.com/clinicdesk/clinicdesk/pkg/logger"
	"github.com/clinicdesk/clinicdesk/pkg/metrics"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "clinicdesk",
		Short:         "In-process clinic registry: patients, doctors, appointments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(demoCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("clinicdesk", version)
		},
	}
}

func demoCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed a registry with demo data and walk through its operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(wait)
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "keep running after the demo (useful with METRICS_ENABLED=true)")
	return cmd
}

func runDemo(wait bool) error {
	// Local overrides; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	collector := metrics.NewCollector(cfg.Metrics.Namespace, nil)
	clinic := registry.New(log.Named("registry"), collector)

	// Stand-in for the view layer: re-reads the changed collection and
	// reports its size, the way a table refresh would.
	viewLog := log.Named("view")
	clinic.Register(registry.ObserverFunc(func(kind registry.ChangeKind) {
		var count int
		switch kind {
		case registry.KindPatient:
			count = clinic.PatientCount()
		case registry.KindDoctor:
			count = clinic.DoctorCount()
		case registry.KindAppointment:
			count = clinic.AppointmentCount()
		}
		viewLog.Info("refresh", zap.String("kind", string(kind)), zap.Int("records", count))
	}))

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.MetricsHandler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
		log.Info("metrics endpoint up", zap.String("addr", cfg.Metrics.Addr))
	}

	seedCfg := seed.DefaultConfig()
	seedCfg.SpecialistStrategy = pricing.SpecialistWith(decimal.NewFromFloat(cfg.Pricing.SpecialistMultiplier))
	if err := seed.Load(clinic, seedCfg); err != nil {
		return err
	}

	// Exercise the remaining operations: edit, strategy reassignment,
	// cascading delete.
	if patients := clinic.Patients(); len(patients) > 0 {
		first := patients[0]
		updated := *first
		updated.Phone = "555-0000"
		if err := clinic.EditPatient(first.ID, &updated); err != nil {
			return err
		}
		clinic.RemovePatient(first.ID)
	}
	if appts := clinic.Appointments(); len(appts) > 0 {
		if err := appts[0].SetStrategy(pricing.Standard()); err != nil {
			return err
		}
	}

	printSummary(clinic)

	if wait {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
	}

	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Metrics.ShutdownTimeout)
		defer cancel()
		if err := metricsSrv.Shutdown(ctx); err != nil {
			log.Warn("metrics server shutdown", zap.Error(err))
		}
	}

	return nil
}

func printSummary(clinic *registry.Clinic) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "PATIENTS")
	for _, p := range clinic.Patients() {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", p.Details(), p.Phone, p.Address)
	}

	fmt.Fprintln(w, "DOCTORS")
	for _, d := range clinic.Doctors() {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", d.Details(), d.Phone, d.LicenseNumber)
	}

	fmt.Fprintln(w, "APPOINTMENTS")
	for _, a := range clinic.Appointments() {
		fmt.Fprintf(w, "  #%d\t%s\t%s\t%s\t%s -> %s\n",
			a.ID,
			a.Patient.Name,
			a.Doctor.Name,
			a.ScheduledAt.Format("2006-01-02 15:04"),
			a.BasePrice.StringFixed(2),
			a.FinalPrice().StringFixed(2),
		)
	}

	w.Flush()
}
