//go:build lambda

package main

import (
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed data/solver_data.json
var embeddedData string

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type solveRequest struct {
	Emblems         []string `json:"emblems"`
	OptIn           []string `json:"optIn"`
	Blacklist       []string `json:"blacklist"`
	TankRatioTarget *float64 `json:"tankRatioTarget"`
	Limit           *int     `json:"limit"`
}

type solveResponse struct {
	RunID  string       `json:"runId"`
	Total  int          `json:"total"`
	Shown  int          `json:"shown"`
	Capped bool         `json:"capped"`
	TimeMs int64        `json:"timeMs"`
	Teams  []TeamResult `json:"teams"`
}

// The catalog is parsed once per container and shared by all invocations.
var loadSolver = sync.OnceValues(func() (*Solver, error) {
	cat, err := ParseCatalog(embeddedData)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	log, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewSolver(cat, DefaultConfig(), log)
})

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	solver, err := loadSolver()
	if err != nil {
		return errResp(500, err.Error())
	}
	return handle(ctx, solver, event)
}

func handle(ctx context.Context, solver *Solver, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req solveRequest
	if body != "" {
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			return errResp(400, "invalid JSON: "+err.Error())
		}
	}
	if err := ValidateRequest(solver.Catalog(), req.Emblems, req.OptIn); err != nil {
		return errResp(400, err.Error())
	}

	cfg := solver.Config()
	opts := Options{TankRatioTarget: cfg.TankRatioTarget, Blacklist: req.Blacklist}
	if req.TankRatioTarget != nil {
		opts.TankRatioTarget = *req.TankRatioTarget
	}
	limit := cfg.DisplayLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	results, stats, err := solver.SolveWithStats(ctx, req.Emblems, req.OptIn, opts)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return errResp(500, err.Error())
	}
	shown := results
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	resp := solveResponse{
		RunID:  uuid.New().String(),
		Total:  len(results),
		Shown:  len(shown),
		Capped: stats.Capped,
		TimeMs: stats.Elapsed.Milliseconds(),
		Teams:  shown,
	}
	respJSON, _ := json.Marshal(resp)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
