package conv

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// DefaultDateLayout is the default layout used for time parsing when no layout is specified
const DefaultDateLayout = "2006-01-02 15:04:05.000"

var timeType = reflect.TypeOf(time.Time{})

// exclusive upper bounds of integers representable by float64
const (
	maxInt64Float  = 1 << 63
	maxUint64Float = 1 << 64
)

// Options contains configuration for the converter
type Options struct {
	// DateLayout specifies the layout for time parsing
	DateLayout string
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{
		DateLayout: DefaultDateLayout,
	}
}

// Registry looks up a conversion entry for source and target type
type Registry interface {
	Lookup(source, target reflect.Type) (*Entry, bool)
}

// Converter provides type conversion functionality
type Converter struct {
	options  Options
	registry Registry
}

// NewConverter creates a new type converter; registry entries take precedence over built-in coercion
func NewConverter(options Options, registry Registry) *Converter {
	return &Converter{
		options:  options,
		registry: registry,
	}
}

// Convert converts the source value to the destination value
func (c *Converter) Convert(src interface{}, dest interface{}) error {
	if dest == nil {
		return errors.New("destination cannot be nil")
	}
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return errors.New("destination must be a pointer")
	}
	if destValue.IsNil() {
		return errors.New("destination pointer cannot be nil")
	}
	if src == nil {
		return nil // Nothing to convert
	}
	return c.convert(destValue, reflect.ValueOf(src))
}

func (c *Converter) convert(destValue, srcValue reflect.Value) error {
	if srcValue.Kind() == reflect.Interface {
		if srcValue.IsNil() {
			return nil
		}
		srcValue = srcValue.Elem()
	}
	srcType := srcValue.Type()
	destType := destValue.Type().Elem()

	if c.registry != nil {
		if entry, ok := c.registry.Lookup(srcType, destType); ok {
			result, err := entry.Convert(srcValue.Interface())
			if err != nil {
				return err
			}
			if result == nil {
				destValue.Elem().Set(reflect.Zero(destType))
				return nil
			}
			destValue.Elem().Set(reflect.ValueOf(result))
			return nil
		}
	}

	if srcType.AssignableTo(destType) {
		destValue.Elem().Set(srcValue)
		return nil
	}

	if srcType.Kind() == reflect.Ptr {
		if srcValue.IsNil() {
			return nil
		}
		return c.convert(destValue, srcValue.Elem())
	}

	if destType.Kind() == reflect.Ptr {
		elemValue := reflect.New(destType.Elem())
		if err := c.convert(elemValue, srcValue); err != nil {
			return err
		}
		destValue.Elem().Set(elemValue)
		return nil
	}

	switch destType.Kind() {
	case reflect.String:
		return c.convertToString(destValue, srcValue)
	case reflect.Bool:
		return c.convertToBool(destValue, srcValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return c.convertToInt(destValue, srcValue)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return c.convertToUint(destValue, srcValue)
	case reflect.Float32, reflect.Float64:
		return c.convertToFloat(destValue, srcValue)
	case reflect.Slice:
		return c.convertToSlice(destValue, srcValue)
	}

	if destType == timeType {
		return c.convertToTime(destValue, srcValue)
	}

	if srcType.ConvertibleTo(destType) {
		destValue.Elem().Set(srcValue.Convert(destType))
		return nil
	}
	return fmt.Errorf("unsupported conversion: %v to %v", srcType, destType)
}

func (c *Converter) convertToString(destValue, srcValue reflect.Value) error {
	var result string

	switch srcValue.Kind() {
	case reflect.String:
		result = srcValue.String()
	case reflect.Bool:
		result = strconv.FormatBool(srcValue.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = strconv.FormatInt(srcValue.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = strconv.FormatUint(srcValue.Uint(), 10)
	case reflect.Float32:
		result = strconv.FormatFloat(srcValue.Float(), 'f', -1, 32)
	case reflect.Float64:
		result = strconv.FormatFloat(srcValue.Float(), 'f', -1, 64)
	case reflect.Slice:
		if srcValue.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("cannot convert %v to string", srcValue.Type())
		}
		result = string(srcValue.Bytes())
	default:
		return fmt.Errorf("cannot convert %v to string", srcValue.Type())
	}

	destValue.Elem().SetString(result)
	return nil
}

func (c *Converter) convertToBool(destValue, srcValue reflect.Value) error {
	var result bool

	switch srcValue.Kind() {
	case reflect.Bool:
		result = srcValue.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint() != 0
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float() != 0
	case reflect.String:
		var err error
		if result, err = strconv.ParseBool(srcValue.String()); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot convert %v to bool", srcValue.Type())
	}

	destValue.Elem().SetBool(result)
	return nil
}

func (c *Converter) convertToInt(destValue, srcValue reflect.Value) error {
	var result int64

	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := srcValue.Uint()
		if v > math.MaxInt64 {
			return fmt.Errorf("value %d overflows %v", v, destValue.Type().Elem())
		}
		result = int64(v)
	case reflect.Float32, reflect.Float64:
		v := srcValue.Float()
		if v != math.Trunc(v) {
			return fmt.Errorf("cannot convert fractional value %v to %v", v, destValue.Type().Elem())
		}
		if v < math.MinInt64 || v >= maxInt64Float {
			return fmt.Errorf("value %v overflows %v", v, destValue.Type().Elem())
		}
		result = int64(v)
	case reflect.String:
		var err error
		if result, err = strconv.ParseInt(srcValue.String(), 10, 64); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot convert %v to int", srcValue.Type())
	}

	if destValue.Elem().OverflowInt(result) {
		return fmt.Errorf("value %d overflows %v", result, destValue.Type().Elem())
	}
	destValue.Elem().SetInt(result)
	return nil
}

func (c *Converter) convertToUint(destValue, srcValue reflect.Value) error {
	var result uint64

	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := srcValue.Int()
		if v < 0 {
			return fmt.Errorf("cannot convert negative value %d to unsigned int", v)
		}
		result = uint64(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint()
	case reflect.Float32, reflect.Float64:
		v := srcValue.Float()
		if v < 0 {
			return fmt.Errorf("cannot convert negative value %v to unsigned int", v)
		}
		if v != math.Trunc(v) {
			return fmt.Errorf("cannot convert fractional value %v to %v", v, destValue.Type().Elem())
		}
		if v >= maxUint64Float {
			return fmt.Errorf("value %v overflows %v", v, destValue.Type().Elem())
		}
		result = uint64(v)
	case reflect.String:
		var err error
		if result, err = strconv.ParseUint(srcValue.String(), 10, 64); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot convert %v to uint", srcValue.Type())
	}

	if destValue.Elem().OverflowUint(result) {
		return fmt.Errorf("value %d overflows %v", result, destValue.Type().Elem())
	}
	destValue.Elem().SetUint(result)
	return nil
}

func (c *Converter) convertToFloat(destValue, srcValue reflect.Value) error {
	var result float64

	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = float64(srcValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = float64(srcValue.Uint())
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float()
	case reflect.String:
		var err error
		if result, err = strconv.ParseFloat(srcValue.String(), 64); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot convert %v to float", srcValue.Type())
	}

	if destValue.Elem().OverflowFloat(result) {
		return fmt.Errorf("value %v overflows %v", result, destValue.Type().Elem())
	}
	destValue.Elem().SetFloat(result)
	return nil
}

// convertToTime accepts formatted strings and epoch milliseconds, the two date shapes a search store returns
func (c *Converter) convertToTime(destValue, srcValue reflect.Value) error {
	var t time.Time

	switch srcValue.Kind() {
	case reflect.String:
		var err error
		if t, err = c.parseTime(srcValue.String()); err != nil {
			return err
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		t = time.UnixMilli(srcValue.Int()).UTC()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		t = time.UnixMilli(int64(srcValue.Uint())).UTC()
	case reflect.Float32, reflect.Float64:
		t = time.UnixMilli(int64(srcValue.Float())).UTC()
	default:
		return fmt.Errorf("cannot convert %v to time.Time", srcValue.Type())
	}

	destValue.Elem().Set(reflect.ValueOf(t))
	return nil
}

func (c *Converter) parseTime(value string) (time.Time, error) {
	layout := c.options.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	layouts := []string{layout, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}
	var err error
	for _, candidate := range layouts {
		var t time.Time
		if t, err = time.Parse(candidate, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time string '%s': %w", value, err)
}

func (c *Converter) convertToSlice(destValue, srcValue reflect.Value) error {
	destType := destValue.Type().Elem()
	destElemType := destType.Elem()

	if destElemType.Kind() == reflect.Uint8 && srcValue.Kind() == reflect.String {
		destValue.Elem().SetBytes([]byte(srcValue.String()))
		return nil
	}

	if srcValue.Kind() != reflect.Slice && srcValue.Kind() != reflect.Array {
		// single value to slice with one element
		sliceValue := reflect.MakeSlice(destType, 1, 1)
		if err := c.convert(sliceValue.Index(0).Addr(), srcValue); err != nil {
			return err
		}
		destValue.Elem().Set(sliceValue)
		return nil
	}

	if srcValue.Kind() == reflect.Slice && srcValue.IsNil() {
		destValue.Elem().Set(reflect.Zero(destType))
		return nil
	}

	length := srcValue.Len()
	sliceValue := reflect.MakeSlice(destType, length, length)
	for i := 0; i < length; i++ {
		if err := c.convert(sliceValue.Index(i).Addr(), srcValue.Index(i)); err != nil {
			return fmt.Errorf("error converting slice element %d: %w", i, err)
		}
	}
	destValue.Elem().Set(sliceValue)
	return nil
}
