package yamledit_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamledit/value"
)

// decodeYAMLValue decodes data as YAML into a [value.Value] using
// goccy/go-yaml's AST, giving tests an independent reference reader to
// compare ApplyPatch's output against -- the same role Property 1's
// decode_yaml plays.
func decodeYAMLValue(t *testing.T, data []byte) value.Value {
	t.Helper()

	f, err := yaml.ParseBytes(data, 0)
	require.NoError(t, err)
	require.Len(t, f.Docs, 1)

	v, err := nodeToValue(f.Docs[0].Body)
	require.NoError(t, err)

	return v
}

func nodeToValue(n ast.Node) (value.Value, error) {
	if n == nil {
		return value.NewNull(), nil
	}

	switch tn := n.(type) {
	case *ast.NullNode:
		return value.NewNull(), nil
	case *ast.BoolNode:
		return value.NewBool(tn.Value), nil
	case *ast.IntegerNode:
		switch i := tn.Value.(type) {
		case int64:
			return value.NewInt(i), nil
		case uint64:
			return value.NewInt(int64(i)), nil
		default:
			return value.NewInt(0), nil
		}
	case *ast.FloatNode:
		return value.NewFloat(tn.Value), nil
	case *ast.StringNode:
		return value.NewString(tn.Value), nil
	case *ast.LiteralNode:
		return value.NewString(tn.Value.Value), nil
	case *ast.SequenceNode:
		items := make([]value.Value, 0, len(tn.Values))

		for _, item := range tn.Values {
			v, err := nodeToValue(item)
			if err != nil {
				return value.Value{}, err
			}

			items = append(items, v)
		}

		return value.NewSequence(items), nil
	case *ast.MappingNode:
		m := value.NewMap()

		for _, mv := range tn.Values {
			key, err := nodeToValue(mv.Key)
			if err != nil {
				return value.Value{}, err
			}

			val, err := nodeToValue(mv.Value)
			if err != nil {
				return value.Value{}, err
			}

			m.Set(key.Str, val)
		}

		return value.NewMapping(m), nil
	case *ast.MappingValueNode:
		m := value.NewMap()

		key, err := nodeToValue(tn.Key)
		if err != nil {
			return value.Value{}, err
		}

		val, err := nodeToValue(tn.Value)
		if err != nil {
			return value.Value{}, err
		}

		m.Set(key.Str, val)

		return value.NewMapping(m), nil
	default:
		return value.NewString(n.String()), nil
	}
}
