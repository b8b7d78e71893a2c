package maxent

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire layout (protobuf):
//
//	message Model {
//	  repeated string    outcomes            = 1;
//	  repeated Predicate predicates          = 2;
//	  double             correction_constant = 3;
//	  double             correction_param    = 4;
//	}
//	message Predicate { string name = 1; repeated Param params = 2; }
//	message Param     { int32 outcome = 1; double weight = 2; }
const (
	fieldOutcome            protowire.Number = 1
	fieldPredicate          protowire.Number = 2
	fieldCorrectionConstant protowire.Number = 3
	fieldCorrectionParam    protowire.Number = 4

	fieldPredicateName   protowire.Number = 1
	fieldPredicateParams protowire.Number = 2

	fieldParamOutcome protowire.Number = 1
	fieldParamWeight  protowire.Number = 2
)

// Load reads a model file written by Save.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	return Unmarshal(data)
}

// Save writes m to path.
func Save(path string, m *Model) error {
	if err := os.WriteFile(path, Marshal(m), 0o644); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}
	return nil
}

// Marshal encodes m. Predicates are written in name order so the output is
// deterministic.
func Marshal(m *Model) []byte {
	var b []byte
	for _, o := range m.outcomes {
		b = protowire.AppendTag(b, fieldOutcome, protowire.BytesType)
		b = protowire.AppendString(b, o)
	}

	names := make([]string, 0, len(m.predicates))
	for name := range m.predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b = protowire.AppendTag(b, fieldPredicate, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalPredicate(name, m.predicates[name]))
	}

	if m.correctionConstant != 0 {
		b = protowire.AppendTag(b, fieldCorrectionConstant, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(m.correctionConstant))
	}
	if m.correctionParam != 0 {
		b = protowire.AppendTag(b, fieldCorrectionParam, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(m.correctionParam))
	}
	return b
}

func marshalPredicate(name string, params []Param) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldPredicateName, protowire.BytesType)
	b = protowire.AppendString(b, name)
	for _, p := range params {
		var pb []byte
		pb = protowire.AppendTag(pb, fieldParamOutcome, protowire.VarintType)
		pb = protowire.AppendVarint(pb, uint64(p.Outcome))
		pb = protowire.AppendTag(pb, fieldParamWeight, protowire.Fixed64Type)
		pb = protowire.AppendFixed64(pb, math.Float64bits(p.Weight))

		b = protowire.AppendTag(b, fieldPredicateParams, protowire.BytesType)
		b = protowire.AppendBytes(b, pb)
	}
	return b
}

// Unmarshal decodes a model encoded by Marshal. Unknown fields are skipped.
func Unmarshal(data []byte) (*Model, error) {
	var (
		outcomes   []string
		predicates = map[string][]Param{}
		constant   float64
		param      float64
	)

	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldOutcome && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n >= 0 {
				outcomes = append(outcomes, v)
			}
			return n, nil
		case num == fieldPredicate && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			name, params, err := unmarshalPredicate(v)
			if err != nil {
				return 0, err
			}
			predicates[name] = append(predicates[name], params...)
			return n, nil
		case num == fieldCorrectionConstant && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			constant = math.Float64frombits(v)
			return n, nil
		case num == fieldCorrectionParam && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			param = math.Float64frombits(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return nil, err
	}

	return New(outcomes, predicates, WithCorrection(constant, param))
}

func unmarshalPredicate(data []byte) (string, []Param, error) {
	var (
		name   string
		params []Param
	)
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldPredicateName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			name = v
			return n, nil
		case num == fieldPredicateParams && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			p, err := unmarshalParam(v)
			if err != nil {
				return 0, err
			}
			params = append(params, p)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return name, params, err
}

func unmarshalParam(data []byte) (Param, error) {
	var p Param
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldParamOutcome && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			p.Outcome = int(int32(v))
			return n, nil
		case num == fieldParamWeight && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			p.Weight = math.Float64frombits(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return p, err
}

// walkFields calls fn for each field in b. fn returns how many bytes of the
// field value it consumed, or a negative protowire error code.
func walkFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidModel, protowire.ParseError(n))
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrInvalidModel, num, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}
