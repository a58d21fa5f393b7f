package esconv

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/viant/esconv/conv"
)

const canonicalUUIDLength = 36

var errUUIDLength = errors.New("expected 36 characters in 8-4-4-4-12 form")

var (
	uuidType    = reflect.TypeOf(uuid.UUID{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	float64Type = reflect.TypeOf(float64(0))
)

func uuidConverters() []*conv.Entry {
	return []*conv.Entry{
		conv.NewReading(stringToUUID),
		conv.NewWriting(uuidToString),
	}
}

func decimalConverters(exact bool) []*conv.Entry {
	toDecimal := float64ToDecimal
	if exact {
		toDecimal = float64ToExactDecimal
	}
	return []*conv.Entry{
		conv.NewWriting(decimalToFloat64),
		conv.NewReading(toDecimal),
	}
}

// stringToUUID accepts the canonical hyphenated form only
func stringToUUID(src string) (uuid.UUID, error) {
	if len(src) != canonicalUUIDLength {
		return uuid.Nil, &FormatError{Value: src, Type: uuidType, Err: errUUIDLength}
	}
	ret, err := uuid.Parse(src)
	if err != nil {
		return uuid.Nil, &FormatError{Value: src, Type: uuidType, Err: err}
	}
	return ret, nil
}

func uuidToString(src uuid.UUID) (string, error) {
	return src.String(), nil
}

// float64ToDecimal uses the shortest decimal representation that round trips to src
func float64ToDecimal(src float64) (decimal.Decimal, error) {
	if err := ensureFinite(src); err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(src), nil
}

// float64ToExactDecimal expands the binary value of src, i.e. 1.1 becomes 1.100000000000000088817841970012523233890533447265625
func float64ToExactDecimal(src float64) (decimal.Decimal, error) {
	if err := ensureFinite(src); err != nil {
		return decimal.Decimal{}, err
	}
	if src == 0 {
		return decimal.Zero, nil
	}
	mant := new(big.Float)
	exp := new(big.Float).SetFloat64(src).MantExp(mant)
	// src == mant * 2^exp with 0.5 <= |mant| < 1 and at most 53 significant bits
	mant.SetMantExp(mant, 53)
	exp -= 53
	coefficient, _ := mant.Int(nil)
	if exp >= 0 {
		return decimal.NewFromBigInt(coefficient.Lsh(coefficient, uint(exp)), 0), nil
	}
	// c / 2^k == c * 5^k / 10^k
	scale := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(coefficient.Mul(coefficient, scale), int32(exp)), nil
}

func ensureFinite(src float64) error {
	if math.IsNaN(src) || math.IsInf(src, 0) {
		return &FormatError{Value: strconv.FormatFloat(src, 'g', -1, 64), Type: decimalType, Err: errors.New("value is not finite")}
	}
	return nil
}

func decimalToFloat64(src decimal.Decimal) (float64, error) {
	ret, _ := src.Float64()
	if math.IsInf(ret, 0) {
		return 0, &OverflowError{Value: src.String(), Type: float64Type}
	}
	return ret, nil
}
