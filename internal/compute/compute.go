// Package compute implements the numeric endpoints: factorial, Fibonacci and
// the n-th prime over a bounded integer argument.
package compute

import (
	"errors"
	"math/big"
)

// Operation names one of the numeric functions.
type Operation string

const (
	OpFactorial Operation = "factorial"
	OpFibonacci Operation = "fibonacci"
	OpNthPrime  Operation = "nthPrime"
)

// ParseOperation resolves a wire name. "prime" is accepted for nthPrime.
func ParseOperation(name string) (Operation, bool) {
	switch name {
	case string(OpFactorial):
		return OpFactorial, true
	case string(OpFibonacci):
		return OpFibonacci, true
	case string(OpNthPrime), "prime":
		return OpNthPrime, true
	}
	return "", false
}

// ErrNoZerothPrime is returned by NthPrime for n == 0; primes are 1-indexed.
var ErrNoZerothPrime = errors.New("primes are numbered from 1")

// Factorial returns n!. Negative n yields 1.
func Factorial(n int) *big.Int {
	result := big.NewInt(1)
	for i := 2; i <= n; i++ {
		result.Mul(result, big.NewInt(int64(i)))
	}
	return result
}

// Fibonacci returns F(n) with F(0) = 0 and F(1) = 1.
func Fibonacci(n int) *big.Int {
	if n <= 0 {
		return big.NewInt(0)
	}

	a, b := big.NewInt(0), big.NewInt(1)
	for i := 2; i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return b
}

// NthPrime returns the n-th prime, where NthPrime(1) == 2.
func NthPrime(n int) (int, error) {
	if n < 1 {
		return 0, ErrNoZerothPrime
	}
	if n == 1 {
		return 2, nil
	}

	count := 1
	candidate := 1
	for count < n {
		candidate += 2
		if isPrime(candidate) {
			count++
		}
	}
	return candidate, nil
}

// isPrime tests n by trial division up to its square root.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}
