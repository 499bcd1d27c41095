package calculations

import "fmt"

// InvalidParameterError возвращается при недопустимых входных данных.
// Field содержит имя параметра так, как он передается в запросе.
type InvalidParameterError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("неверный параметр %s (%v): %s", e.Field, e.Value, e.Reason)
}

func invalid(field string, value interface{}, reason string) *InvalidParameterError {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}
