package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pasarcli/internal/brandstore"
	"pasarcli/internal/exporter"
	"pasarcli/internal/files"
	"pasarcli/internal/services"
	"pasarcli/internal/validation"
	"pasarcli/pkg/contracts/domain"
)

func main() {
	marketplace := flag.String("marketplace", "shopee", "marketplace of the export files: shopee or tiktok")
	kind := flag.String("mode", "orders", "processing mode: orders or income")
	platform := flag.String("platform", "", "platform label stamped on every order row, e.g. \"MP SHOPEE YUNI\"")
	operator := flag.String("operator", "", "operator tag copied into the PLN/INPUT column, e.g. cs1.zaneva@gmail.com")
	brandsFile := flag.String("brands", "", "optional brand mapping file (.xlsx or .csv)")
	inDir := flag.String("in", "", "optional input directory, processed in addition to file arguments")
	outDir := flag.String("out", "output", "output directory")
	format := flag.String("format", "xlsx", "output format: xlsx or csv")
	timeout := flag.Duration("timeout", 5*time.Minute, "processing timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger, options{
		marketplace: domain.MarketplaceID(strings.ToLower(*marketplace)),
		kind:        strings.ToLower(*kind),
		platform:    *platform,
		operator:    *operator,
		brandsFile:  *brandsFile,
		inDir:       *inDir,
		outDir:      *outDir,
		format:      strings.ToLower(*format),
		timeout:     *timeout,
		files:       flag.Args(),
	}); err != nil {
		logger.Error("processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type options struct {
	marketplace domain.MarketplaceID
	kind        string
	platform    string
	operator    string
	brandsFile  string
	inDir       string
	outDir      string
	format      string
	timeout     time.Duration
	files       []string
}

func run(logger *slog.Logger, opts options) error {
	if opts.inDir != "" {
		found, err := files.NewDiscovery(logger).FindExports(opts.inDir)
		if err != nil {
			return err
		}
		for _, f := range found {
			opts.files = append(opts.files, f.Path)
		}
	}
	if len(opts.files) == 0 {
		return fmt.Errorf("no input files, pass export files as arguments or use -in")
	}
	if opts.format != "xlsx" && opts.format != "csv" {
		return fmt.Errorf("unsupported format %q", opts.format)
	}
	if opts.kind != "orders" && opts.kind != "income" {
		return fmt.Errorf("unsupported mode %q", opts.kind)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	brands := brandstore.New(logger, "")
	if opts.brandsFile != "" {
		if err := loadBrands(ctx, brands, opts.brandsFile); err != nil {
			return fmt.Errorf("load brand mappings: %w", err)
		}
		logger.Info("brand mappings loaded",
			slog.String("file", opts.brandsFile),
			slog.Int("count", brands.Count()))
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	validator := validation.NewFileValidator(logger)
	svc := services.NewProcessingService(logger, brands, nil, nil)
	inputs := make([]services.InputFile, 0, len(opts.files))
	for _, path := range opts.files {
		if err := validator.ValidateInput(path); err != nil {
			return err
		}
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		inputs = append(inputs, services.InputFile{
			Name: filepath.Base(path),
			Size: size,
			Open: openPath(path),
		})
	}

	outPath := filepath.Join(opts.outDir, outputName(opts))

	switch opts.kind {
	case "orders":
		result, err := svc.ProcessOrders(ctx, services.OrderRequest{
			Marketplace: opts.marketplace,
			Platform:    opts.platform,
			Operator:    opts.operator,
		}, inputs)
		if err != nil {
			return err
		}
		if err := writeFile(logger, outPath, opts.format, func(dst io.Writer) error {
			if opts.format == "csv" {
				return exporter.NewCSVWriter(logger).WriteOrders(dst, opts.marketplace, result.Rows)
			}
			return exporter.NewExcelWriter(logger).WriteOrders(dst, opts.marketplace, result.Rows)
		}); err != nil {
			return err
		}
		printOrderSummary(result.Stats, outPath)
	case "income":
		result, err := svc.ProcessIncome(ctx, opts.marketplace, inputs)
		if err != nil {
			return err
		}
		if err := writeFile(logger, outPath, opts.format, func(dst io.Writer) error {
			if opts.format == "csv" {
				return exporter.NewCSVWriter(logger).WriteIncome(dst, result.Rows)
			}
			return exporter.NewExcelWriter(logger).WriteIncome(dst, result.Rows)
		}); err != nil {
			return err
		}
		printIncomeSummary(result.Stats, outPath)
	}

	return nil
}

func loadBrands(ctx context.Context, brands *brandstore.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	mappings, err := brandstore.ParseFile(filepath.Base(path), f)
	if err != nil {
		return err
	}
	return brands.Replace(ctx, mappings)
}

func openPath(path string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

func writeFile(logger *slog.Logger, path, format string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	logger.Info("output written", slog.String("path", path), slog.String("format", format))
	return nil
}

func outputName(opts options) string {
	return fmt.Sprintf("%s_%s_%s.%s", opts.marketplace, opts.kind, time.Now().Format("20060102_150405"), opts.format)
}

func printOrderSummary(stats domain.BatchStats, outPath string) {
	fmt.Printf("Rows in:      %d\n", stats.InputRows)
	fmt.Printf("Cancelled:    %d\n", stats.DeletedRows)
	fmt.Printf("SKU splits:   %d\n", stats.SplitCount)
	fmt.Printf("Rows out:     %d\n", stats.OutputRows)
	fmt.Printf("Orders:       %d\n", stats.TotalOrders)
	fmt.Printf("Output:       %s\n", outPath)
}

func printIncomeSummary(stats domain.BatchStats, outPath string) {
	fmt.Printf("Rows in:      %d\n", stats.InputRows)
	fmt.Printf("Rows out:     %d\n", stats.OutputRows)
	fmt.Printf("Platform fee: %d\n", stats.TotalPlatformFee)
	fmt.Printf("AMS:          %d\n", stats.TotalAffiliateFee)
	fmt.Printf("Net income:   %d\n", stats.TotalIncome)
	fmt.Printf("Output:       %s\n", outPath)
}
