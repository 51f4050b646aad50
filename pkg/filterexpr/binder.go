// Package filterexpr turns AIP-160 style CEL filters and order_by strings into plain
// query parameter structs. Only conjunctions of simple comparisons are accepted, and
// every field and operator must be whitelisted by a ResourceSchema.
package filterexpr

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Msg wraps request DTOs that expose filter and order_by raw inputs.
type Msg interface {
	GetFilter() string
	GetOrderBy() string
}

// ValueKind describes the kind of literal value a field accepts.
type ValueKind string

const (
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	// KindDate is a YYYY-MM-DD string literal; it binds as a string.
	KindDate      ValueKind = "date"
	KindTimestamp ValueKind = "timestamp"
)

const dateLayout = "2006-01-02"

// Op represents a supported comparison operation.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// SetterFunc allows custom assignment of literal values to struct fields.
type SetterFunc func(field reflect.Value, value any) error

// FilterField describes how a filter field maps to a params struct field and which operations are allowed.
type FilterField struct {
	Kind   ValueKind
	Ops    map[Op]string
	Setter SetterFunc
}

// OrderField maps an order key to a SQL expression.
type OrderField struct {
	Expr  string
	Nulls string
}

// OrderSchema describes ordering defaults and whitelisted keys.
type OrderSchema struct {
	DefaultPrimary     string
	DefaultPrimaryDesc bool
	FallbackKey        string
	FallbackDesc       bool
	Fields             map[string]OrderField
}

// ResourceSchema aggregates filtering and ordering rules for a resource.
type ResourceSchema struct {
	Filter map[string]FilterField
	Order  OrderSchema
}

var timeType = reflect.TypeOf(time.Time{})

// Bind parses the request filter & order_by and populates the query params struct accordingly.
// The params struct must expose PrimaryKey, PrimaryDesc, SecondaryKey and SecondaryDesc.
func Bind[M Msg, P any](msg M, binding *P, schema ResourceSchema) error {
	if binding == nil {
		return errors.New("binding must not be nil")
	}

	if err := BindFilter(msg.GetFilter(), binding, schema.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	order, err := parseOrderBy(msg.GetOrderBy(), schema.Order)
	if err != nil {
		return fmt.Errorf("order_by: %w", err)
	}

	return setOrderParams(binding, order)
}

// BindFilter applies only the filter expression to binding.
func BindFilter(filter string, binding any, fields map[string]FilterField) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil
	}
	if len(fields) == 0 {
		return errors.New("filter schema has no fields defined")
	}

	dest, err := structTarget(binding)
	if err != nil {
		return err
	}

	env, err := buildEnv(fields)
	if err != nil {
		return err
	}
	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return fmt.Errorf("failed to convert AST: %w", err)
	}
	conjuncts, err := extractConjuncts(parsed.GetExpr())
	if err != nil {
		return err
	}

	for _, expr := range conjuncts {
		pred, err := parseAtomicPredicate(expr)
		if err != nil {
			return err
		}
		if err := applyPredicate(dest, pred, fields); err != nil {
			return err
		}
	}
	return nil
}

func structTarget(binding any) (reflect.Value, error) {
	rv := reflect.ValueOf(binding)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, errors.New("binding must be a non-nil pointer")
	}
	dest := rv.Elem()
	if dest.Kind() != reflect.Struct {
		return reflect.Value{}, errors.New("binding must point to a struct")
	}
	return dest, nil
}

func applyPredicate(dest reflect.Value, pred atomicPredicate, fields map[string]FilterField) error {
	rule, ok := fields[pred.Field]
	if !ok {
		return fmt.Errorf("field %q is not allowed", pred.Field)
	}
	targetName, ok := rule.Ops[pred.Op]
	if !ok {
		return fmt.Errorf("operator %q is not allowed for field %q", string(pred.Op), pred.Field)
	}
	if err := validateLiteral(rule.Kind, pred.Op, pred.Value); err != nil {
		return fmt.Errorf("field %q: %w", pred.Field, err)
	}

	field := dest.FieldByName(targetName)
	if !field.IsValid() {
		return fmt.Errorf("params struct %s has no field named %q", dest.Type(), targetName)
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field %q on params struct", targetName)
	}

	if rule.Setter != nil {
		if field.Kind() == reflect.Ptr && field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		if err := rule.Setter(field, pred.Value); err != nil {
			return fmt.Errorf("setter for field %q failed: %w", targetName, err)
		}
		return nil
	}
	if err := assignValue(field, pred.Value); err != nil {
		return fmt.Errorf("failed to assign field %q: %w", targetName, err)
	}
	return nil
}

type atomicPredicate struct {
	Field string
	Op    Op
	Value any
}

func buildEnv(fields map[string]FilterField) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for name, rule := range fields {
		celType, err := celTypeForKind(rule.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString, KindDate:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindTimestamp:
		return cel.TimestampType, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}

// extractConjuncts flattens nested _&&_ calls; cel-go parses a && b && c as a binary tree.
func extractConjuncts(expr *exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}

	call := expr.GetCallExpr()
	if call == nil {
		return []*exprpb.Expr{expr}, nil
	}

	switch call.Function {
	case "_&&_":
		if len(call.Args) < 2 || call.Target != nil {
			return nil, errors.New("logical AND must have at least two operands")
		}
		var result []*exprpb.Expr
		for _, arg := range call.Args {
			conjuncts, err := extractConjuncts(arg)
			if err != nil {
				return nil, err
			}
			result = append(result, conjuncts...)
		}
		return result, nil
	case "_||_", "_?_:_", "!_":
		return nil, fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	default:
		return []*exprpb.Expr{expr}, nil
	}
}

func parseAtomicPredicate(expr *exprpb.Expr) (atomicPredicate, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return atomicPredicate{}, errors.New("unsupported expression; expected comparison or function call")
	}

	switch call.Function {
	case "_==_":
		return parseBinaryPredicate(call, OpEQ)
	case "_>=_":
		return parseBinaryPredicate(call, OpGTE)
	case "_<=_":
		return parseBinaryPredicate(call, OpLTE)
	case "@in":
		return parseOperandPair(call, OpIN, false)
	case "startsWith":
		return parseOperandPair(call, OpSW, true)
	default:
		return atomicPredicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}
}

func parseBinaryPredicate(call *exprpb.Expr_Call, op Op) (atomicPredicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return atomicPredicate{}, fmt.Errorf("operator %q expects two operands", string(op))
	}
	return predicateFrom(call.Args[0], call.Args[1], op)
}

// parseOperandPair handles both the receiver form (text.startsWith('a')) and the global
// form (status in ['red']). receiverIsField says which side the receiver holds.
func parseOperandPair(call *exprpb.Expr_Call, op Op, receiverIsField bool) (atomicPredicate, error) {
	if call.Target != nil {
		if len(call.Args) != 1 {
			return atomicPredicate{}, fmt.Errorf("%s with receiver must have exactly one argument", op)
		}
		if receiverIsField {
			return predicateFrom(call.Target, call.Args[0], op)
		}
		return predicateFrom(call.Args[0], call.Target, op)
	}
	if len(call.Args) != 2 {
		return atomicPredicate{}, fmt.Errorf("%s expects two operands", op)
	}
	return predicateFrom(call.Args[0], call.Args[1], op)
}

func predicateFrom(fieldExpr, valueExpr *exprpb.Expr, op Op) (atomicPredicate, error) {
	ident := fieldExpr.GetIdentExpr()
	if ident == nil {
		return atomicPredicate{}, errors.New("left-hand side must be an identifier")
	}
	value, err := parseLiteral(valueExpr)
	if err != nil {
		return atomicPredicate{}, err
	}
	if op == OpSW {
		if _, ok := value.(string); !ok {
			return atomicPredicate{}, errors.New("startsWith requires a string literal argument")
		}
	}
	return atomicPredicate{Field: ident.GetName(), Op: op, Value: value}, nil
}

func parseLiteral(expr *exprpb.Expr) (any, error) {
	if constant := expr.GetConstExpr(); constant != nil {
		switch constant.ConstantKind.(type) {
		case *exprpb.Constant_StringValue:
			return constant.GetStringValue(), nil
		case *exprpb.Constant_Int64Value:
			return float64(constant.GetInt64Value()), nil
		case *exprpb.Constant_Uint64Value:
			return float64(constant.GetUint64Value()), nil
		case *exprpb.Constant_DoubleValue:
			return constant.GetDoubleValue(), nil
		default:
			return nil, fmt.Errorf("literal type %T is not supported", constant.ConstantKind)
		}
	}

	if list := expr.GetListExpr(); list != nil {
		elements := list.GetElements()
		values := make([]string, len(elements))
		for i, elem := range elements {
			val, err := parseLiteral(elem)
			if err != nil {
				return nil, fmt.Errorf("list literal element %d: %w", i, err)
			}
			str, ok := val.(string)
			if !ok {
				return nil, errors.New("list literal elements must be strings")
			}
			values[i] = str
		}
		return values, nil
	}

	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" {
		return parseTimestampCall(call)
	}

	return nil, errors.New("right-hand side must be a literal, list literal, or timestamp() call")
}

func parseTimestampCall(call *exprpb.Expr_Call) (any, error) {
	if call.Target != nil || len(call.Args) != 1 {
		return nil, errors.New("timestamp() expects a single string argument")
	}
	arg := call.Args[0].GetConstExpr()
	if arg == nil || arg.GetStringValue() == "" {
		return nil, errors.New("timestamp() argument must be a non-empty string literal")
	}
	str := arg.GetStringValue()
	if t, err := time.Parse(time.RFC3339Nano, str); err == nil {
		return t, nil
	}
	return nil, fmt.Errorf("timestamp literal %q is not RFC3339", str)
}

func validateLiteral(kind ValueKind, op Op, value any) error {
	switch kind {
	case KindString, KindDate:
		var items []string
		if op == OpIN {
			list, ok := value.([]string)
			if !ok {
				return fmt.Errorf("expected list of %s literals", kind)
			}
			if len(list) == 0 {
				return errors.New("list literal must not be empty")
			}
			items = list
		} else {
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("expected %s literal", kind)
			}
			items = []string{str}
		}
		for _, item := range items {
			if op == OpIN && item == "" {
				return errors.New("list literal must not contain empty strings")
			}
			if kind == KindDate && op != OpSW {
				if _, err := time.Parse(dateLayout, item); err != nil {
					return fmt.Errorf("date literal %q must be YYYY-MM-DD", item)
				}
			}
		}
	case KindNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	case KindTimestamp:
		if _, ok := value.(time.Time); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	default:
		return fmt.Errorf("unsupported field kind %s", kind)
	}
	return nil
}

func assignValue(field reflect.Value, value any) error {
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return assignValue(field.Elem(), value)
	}

	if field.Kind() == reflect.Interface {
		field.Set(reflect.ValueOf(value))
		return nil
	}

	switch v := value.(type) {
	case string:
		if field.Kind() != reflect.String {
			return fmt.Errorf("expected string-compatible destination, got %s", field.Kind())
		}
		field.SetString(v)
	case []string:
		if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("expected slice of strings destination, got %s", field.Type())
		}
		clone := reflect.MakeSlice(field.Type(), len(v), len(v))
		for i, item := range v {
			clone.Index(i).SetString(item)
		}
		field.Set(clone)
	case float64:
		return assignNumeric(field, v)
	case time.Time:
		if field.Type() != timeType {
			return fmt.Errorf("expected time.Time destination, got %s", field.Type())
		}
		field.Set(reflect.ValueOf(v))
	default:
		return fmt.Errorf("unsupported literal type %T", value)
	}
	return nil
}

func assignNumeric(field reflect.Value, value float64) error {
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		field.SetFloat(value)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if math.Trunc(value) != value {
			return fmt.Errorf("cannot assign non-integer value %v to integer field", value)
		}
		if field.OverflowInt(int64(value)) || value > math.MaxInt64 || value < math.MinInt64 {
			return fmt.Errorf("value %v overflows integer field", value)
		}
		field.SetInt(int64(value))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if math.Trunc(value) != value || value < 0 {
			return fmt.Errorf("cannot assign %v to unsigned integer field", value)
		}
		if field.OverflowUint(uint64(value)) || value > math.MaxUint64 {
			return fmt.Errorf("value %v overflows unsigned integer field", value)
		}
		field.SetUint(uint64(value))
		return nil
	default:
		return fmt.Errorf("numeric assignment requires integer or float field, got %s", field.Kind())
	}
}
