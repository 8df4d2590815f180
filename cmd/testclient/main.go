package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dasmlab/glosa/pkg/client"
)

var (
	serverAddr = flag.String("addr", "http://localhost:5000", "Gateway base URL")
	targetLang = flag.String("target", "fr", "Target language code (e.g., en, fr)")
	textFile   = flag.String("file", "", "Path to text file to translate")
	text       = flag.String("text", "", "Text to translate (if file not provided)")
	timeout    = flag.Duration("timeout", 30*time.Second, "Per-request timeout")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	var textToTranslate string
	switch {
	case *textFile != "":
		data, err := os.ReadFile(*textFile)
		if err != nil {
			logger.WithError(err).Fatalf("Failed to read file: %s", *textFile)
		}
		textToTranslate = string(data)
	case *text != "":
		textToTranslate = *text
	default:
		logger.Fatal("Either -file or -text must be provided")
	}

	logger.WithFields(logrus.Fields{
		"server":      *serverAddr,
		"target_lang": *targetLang,
		"text_length": len(textToTranslate),
	}).Info("Connecting to Glosa gateway...")

	c := client.New(*serverAddr, *timeout)
	ctx := context.Background()

	if err := c.Health(ctx); err != nil {
		logger.WithError(err).Fatal("Gateway is not healthy")
	}

	detection, err := c.Detect(ctx, textToTranslate)
	if err != nil {
		logger.WithError(err).Warn("Language detection failed")
	}

	startTime := time.Now()
	translated, err := c.Translate(ctx, textToTranslate, *targetLang)
	if err != nil {
		logger.WithError(err).Fatal("Translation failed")
	}
	duration := time.Since(startTime)

	separator := strings.Repeat("=", 80)
	dashLine := strings.Repeat("-", 80)

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("TRANSLATION RESULTS")
	fmt.Println(separator)
	fmt.Printf("\nDetected Language: %s (confidence %.2f)\n", detection.DetectedLang, detection.Confidence)
	fmt.Printf("Target Language: %s\n", *targetLang)
	fmt.Printf("Translation Time: %.2f seconds\n", duration.Seconds())
	fmt.Println()
	fmt.Println(dashLine)
	fmt.Println("ORIGINAL TEXT:")
	fmt.Println(dashLine)
	fmt.Println(textToTranslate)
	fmt.Println()
	fmt.Println(dashLine)
	fmt.Println("TRANSLATED TEXT:")
	fmt.Println(dashLine)
	fmt.Println(translated)
	fmt.Println()
	fmt.Println(separator)
}
