package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/a11ytools/alt-text-mcp/internal/alttext"
	"github.com/a11ytools/alt-text-mcp/internal/imaging"
	"github.com/a11ytools/alt-text-mcp/internal/server"
	"github.com/a11ytools/alt-text-mcp/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("alt-text-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("alt-text-mcp - MCP server for image alt text accessibility tools")
			fmt.Println()
			fmt.Println("Usage: alt-text-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  ALT_TEXT_MCP_LOG_LEVEL=debug   Enable debug logging")
			fmt.Println("  OPENAI_API_KEY                 Enable the vision API backend")
			fmt.Println("  OPENAI_BASE_URL                Override the vision API endpoint")
			fmt.Println("  OPENAI_VISION_MODEL            Override the vision model")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("ALT_TEXT_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("Alt Text MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	generator := buildGenerator(logLevel == "debug")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(generator)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildGenerator selects the vision backend. With an API key the server
// fetches and analyzes real images; without one it serves the canned
// suggestion sets and performs no network or pixel work.
func buildGenerator(debug bool) *alttext.Generator {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		if debug {
			log.Printf("OPENAI_API_KEY not set, using mock vision backend")
		}
		return alttext.NewGenerator(
			imaging.NewLocalSource(),
			vision.NewMockCaptioner(),
			vision.NewStaticAnalyzer(),
		)
	}

	if debug {
		log.Printf("using OpenAI vision backend")
	}
	return alttext.NewGenerator(
		imaging.NewSource(),
		vision.NewOpenAICaptioner(apiKey, os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_VISION_MODEL")),
		vision.NewImageAnalyzer(),
	)
}
