package lambdaproxy

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"golang.org/x/sync/errgroup"
)

const (
	// WarmupSource identifies scheduled warmup events.
	WarmupSource = "warmup"

	// WarmupDelay keeps warmed instances busy long enough to overlap.
	WarmupDelay = 75 * time.Millisecond

	// MaxWarmupConcurrency bounds the invocations a single warmup event
	// may request.
	MaxWarmupConcurrency = 50

	warmupInFlight = 10
)

// WarmupEvent is the scheduled event payload that keeps instances warm.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse is returned for warmup events.
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// Invoker is the part of the Lambda API used to fan out warmups.
type Invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// IsWarmupEvent reports whether event is a warmup event.
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var warmup WarmupEvent
	if err := json.Unmarshal(event, &warmup); err != nil {
		return nil, false
	}
	if warmup.Source != WarmupSource {
		return nil, false
	}
	return &warmup, true
}

// HandleWarmup answers a warmup event. When an invoker is given it first
// fires Concurrency asynchronous invocations of functionName, capped at
// MaxWarmupConcurrency, and counts the ones Lambda accepted.
func HandleWarmup(ctx context.Context, warmup *WarmupEvent, invoker Invoker, functionName string) WarmupResponse {
	warmed := 1
	if invoker != nil {
		warmed += fanOut(ctx, invoker, functionName, min(warmup.Concurrency, MaxWarmupConcurrency))
	}

	time.Sleep(WarmupDelay)

	return WarmupResponse{
		Status:          "warm",
		InstancesWarmed: warmed,
	}
}

// fanOut invokes functionName count times and returns how many calls succeeded.
func fanOut(ctx context.Context, invoker Invoker, functionName string, count int) int {
	if count <= 0 {
		return 0
	}

	// Children get concurrency 0 so they do not fan out again.
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return 0
	}

	var (
		g        errgroup.Group
		accepted atomic.Int32
	)
	g.SetLimit(warmupInFlight)
	for range count {
		g.Go(func() error {
			_, err := invoker.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			if err == nil {
				accepted.Add(1)
			}
			return err
		})
	}
	_ = g.Wait()
	return int(accepted.Load())
}
