package store

import (
	"cloud.google.com/go/spanner"
	sppb "cloud.google.com/go/spanner/apiv1/spannerpb"
)

// decodeColumn converts a generically read column into a native Go value so
// query callers get typed results (int64, string, bool, float64, time.Time,
// decoded JSON) instead of wire-format wrappers. NULL columns decode to nil.
func decodeColumn(gcv spanner.GenericColumnValue) (any, error) {
	switch gcv.Type.GetCode() {
	case sppb.TypeCode_INT64:
		var v spanner.NullInt64
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return v.Int64, nil

	case sppb.TypeCode_STRING:
		var v spanner.NullString
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return v.StringVal, nil

	case sppb.TypeCode_BOOL:
		var v spanner.NullBool
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return v.Bool, nil

	case sppb.TypeCode_FLOAT64:
		var v spanner.NullFloat64
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return v.Float64, nil

	case sppb.TypeCode_TIMESTAMP:
		var v spanner.NullTime
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return v.Time, nil

	case sppb.TypeCode_DATE:
		var v spanner.NullDate
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return v.Date.String(), nil

	case sppb.TypeCode_JSON:
		var v spanner.NullJSON
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return v.Value, nil

	case sppb.TypeCode_BYTES:
		var v []byte
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil

	default:
		// Arrays, structs, numerics: hand back the raw protobuf value rather
		// than guessing a representation.
		return gcv.Value, nil
	}
}
