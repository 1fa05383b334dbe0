package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"jobforge-backend/internal/bootstrap"
	"jobforge-backend/internal/jobinfo"
	"jobforge-backend/internal/llm"
	"jobforge-backend/internal/profile"
	"jobforge-backend/internal/shared/config"
	"jobforge-backend/internal/synthesis"
)

// prompttest runs the extraction prompt (and optionally synthesis) against
// the live providers configured in the environment. Useful for checking
// credentials and prompt changes without starting the server.
func main() {
	cfg := config.Load()

	jdPath := flag.String("jd", "", "Path to a job description text file")
	full := flag.Bool("full", false, "Run synthesis after extraction (requires a loaded profile)")
	outPath := flag.String("out", "", "Path to write raw JSON output (optional)")
	flag.Parse()

	if strings.TrimSpace(*jdPath) == "" {
		exitErr("job description path is required")
	}
	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}
	jobDescription := string(jdBytes)

	router := llm.NewRouter(bootstrap.BuildClients(context.Background(), cfg)...)
	providers := router.Providers()
	if len(providers) == 0 {
		exitErr("no providers configured; set CEREBRAS_API_KEY, GROQ_API_KEY, OPENROUTER_API_KEY, or GEMINI_API_KEY")
	}
	fmt.Fprintf(os.Stderr, "providers: %s\n", strings.Join(providers, ", "))

	ctx := context.Background()
	record, err := jobinfo.NewExtractor(router).Extract(ctx, jobDescription)
	if err != nil {
		exitErr(fmt.Sprintf("extract: %v", err))
	}

	var payload any = record
	if *full {
		prof, err := profile.Load(cfg.ProfileDir, bootstrap.CandidateIdentity(cfg))
		if err != nil {
			exitErr(fmt.Sprintf("load profile: %v", err))
		}
		content, err := synthesis.NewSynthesizer(router, prof).Synthesize(ctx, record, jobDescription)
		if err != nil {
			exitErr(fmt.Sprintf("synthesize: %v", err))
		}
		payload = struct {
			JobInfo jobinfo.Record    `json:"job_info"`
			Content synthesis.Content `json:"content"`
		}{JobInfo: record, Content: content}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		exitErr(fmt.Sprintf("encode output: %v", err))
	}
	pretty, err := prettyJSON(raw)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
