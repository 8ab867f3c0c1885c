package compute

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"calculator-api/internal/cache"
	"calculator-api/internal/observability"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service dispatches validated requests to the numeric functions. Results are
// pure functions of the request, so they are cached, and concurrent identical
// requests share one computation.
type Service struct {
	cache cache.Cache
	group singleflight.Group
}

// NewService creates a Service. A nil cache disables caching.
func NewService(c cache.Cache) *Service {
	return &Service{cache: c}
}

// Outcome is a computed value and whether it came from the cache.
type Outcome struct {
	Result *big.Int
	Cached bool
}

// Calculate computes req. Input-domain violations are returned as
// *ValidationError and internal faults as *ComputationError.
func (s *Service) Calculate(ctx context.Context, req Request) (Outcome, error) {
	if req.Operation == OpNthPrime && req.Number < 1 {
		return Outcome{}, &ValidationError{Errors: []FieldError{
			fieldError("number", msgNoZerothPrime, req.Number),
		}}
	}

	key := cacheKey(req)
	if result, ok := s.lookup(ctx, key); ok {
		return Outcome{Result: result, Cached: true}, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		result, err := run(req)
		if err != nil {
			return nil, err
		}
		// Detached from the leader's cancellation; waiters share the result.
		s.store(context.WithoutCancel(ctx), key, result)
		return result, nil
	})
	if err != nil {
		return Outcome{}, err
	}

	// Shared callers receive the same *big.Int; hand out copies.
	return Outcome{Result: new(big.Int).Set(v.(*big.Int))}, nil
}

// CacheName reports the backing cache, or "none".
func (s *Service) CacheName() string {
	if s.cache == nil {
		return "none"
	}
	return s.cache.Name()
}

// run invokes the numeric function, converting panics into computation
// errors.
func run(req Request) (result *big.Int, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ComputationError{Operation: req.Operation, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	switch req.Operation {
	case OpFactorial:
		return Factorial(req.Number), nil
	case OpFibonacci:
		return Fibonacci(req.Number), nil
	case OpNthPrime:
		p, err := NthPrime(req.Number)
		if err != nil {
			return nil, &ComputationError{Operation: req.Operation, Err: err}
		}
		return big.NewInt(int64(p)), nil
	}

	return nil, &ComputationError{Operation: req.Operation, Err: errors.New("unsupported operation")}
}

func (s *Service) lookup(ctx context.Context, key string) (*big.Int, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			observability.LoggerWithTrace(ctx).Warn("result cache get failed",
				zap.String("key", key),
				zap.String("cache", s.cache.Name()),
				zap.Error(err),
			)
		}
		return nil, false
	}

	result, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		observability.LoggerWithTrace(ctx).Warn("discarding malformed cached result",
			zap.String("key", key),
			zap.String("cache", s.cache.Name()),
		)
		return nil, false
	}
	return result, true
}

func (s *Service) store(ctx context.Context, key string, result *big.Int) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, result.String()); err != nil {
		observability.LoggerWithTrace(ctx).Warn("result cache set failed",
			zap.String("key", key),
			zap.String("cache", s.cache.Name()),
			zap.Error(err),
		)
	}
}

func cacheKey(req Request) string {
	return "compute:" + string(req.Operation) + ":" + strconv.Itoa(req.Number)
}
