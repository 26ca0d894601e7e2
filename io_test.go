package motley

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/d4l3k/messagediff"
)

func TestValue_MarshalJSON(t *testing.T) {
	type args struct {
		v Value
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{"number", args{Num(1.5)}, `{"kind":"number","data":1.5}`},
		{"zero number survives", args{Num(0)}, `{"kind":"number","data":0}`},
		{"NaN downgrades to absent", args{Num(math.NaN())}, `{"kind":"absent","data":null}`},
		{"text", args{Str("x")}, `{"kind":"text","data":"x"}`},
		{"false survives", args{Bool(false)}, `{"kind":"bool","data":false}`},
		{"struct", args{Obj(map[string]interface{}{"k": 1.0})}, `{"kind":"struct","data":{"k":1}}`},
		{"absent", args{Absent}, `{"kind":"absent","data":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.args.v)
			if err != nil {
				t.Fatalf("json.Marshal(Value) err = %v, want nil", err)
			}
			if string(got) != tt.want {
				t.Errorf("json.Marshal(Value) = %v, want %v", string(got), tt.want)
			}
		})
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	type args struct {
		b string
	}
	tests := []struct {
		name    string
		args    args
		want    Value
		wantErr bool
	}{
		{"number", args{`{"kind":"number","data":2.5}`}, Num(2.5), false},
		{"zero number", args{`{"kind":"number","data":0}`}, Num(0), false},
		{"text", args{`{"kind":"text","data":"x"}`}, Str("x"), false},
		{"false bool", args{`{"kind":"bool","data":false}`}, Bool(false), false},
		{"struct", args{`{"kind":"struct","data":{"k":1}}`},
			Obj(map[string]interface{}{"k": 1.0}), false},
		{"absent", args{`{"kind":"absent","data":null}`}, Absent, false},
		{"bare null", args{`null`}, Absent, false},
		{"missing kind means absent", args{`{"data":null}`}, Absent, false},
		{"fail: number payload is text", args{`{"kind":"number","data":"x"}`}, Absent, true},
		{"fail: text payload is numeric", args{`{"kind":"text","data":1}`}, Absent, true},
		{"fail: bool payload is numeric", args{`{"kind":"bool","data":1}`}, Absent, true},
		{"fail: unknown kind", args{`{"kind":"corge","data":1}`}, Absent, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Value
			err := json.Unmarshal([]byte(tt.args.b), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("json.Unmarshal(Value) err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("json.Unmarshal(Value) err = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("json.Unmarshal(Value) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_jsonRoundTrip(t *testing.T) {
	values := []Value{
		Num(0), Num(-3.25), Str(""), Str("hello"), Bool(false), Bool(true),
		Obj(map[string]interface{}{"k": []interface{}{1.0, "two"}}), Absent,
	}
	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("json.Marshal(%v) err = %v, want nil", v, err)
		}
		var got Value
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("json.Unmarshal(%s) err = %v, want nil", b, err)
		}
		if !got.Equal(v) {
			t.Errorf("round trip of %v = %v", v, got)
		}
	}
}

func TestDataFrame_MarshalJSON(t *testing.T) {
	df := New(
		Column{Name: "a", Values: []Value{Num(1), Absent}},
		Column{Name: "b", Values: []Value{Str("x"), Bool(false)}},
	).SetName("t")
	got, err := json.Marshal(df)
	if err != nil {
		t.Fatalf("json.Marshal(DataFrame) err = %v, want nil", err)
	}
	want := `{"name":"t","index":[0,1],"columns":[` +
		`{"name":"a","values":[{"kind":"number","data":1},{"kind":"absent","data":null}]},` +
		`{"name":"b","values":[{"kind":"text","data":"x"},{"kind":"bool","data":false}]}]}`
	if string(got) != want {
		t.Errorf("json.Marshal(DataFrame) = %v, want %v", string(got), want)
	}
	t.Run("unnamed frame omits the name", func(t *testing.T) {
		got, err := json.Marshal(New(Column{Name: "a", Values: []Value{Num(1)}}))
		if err != nil {
			t.Fatalf("json.Marshal(DataFrame) err = %v, want nil", err)
		}
		if want := `{"index":[0],`; string(got[:len(want)]) != want {
			t.Errorf("json.Marshal(DataFrame) = %v, want prefix %v", string(got), want)
		}
	})
	t.Run("fail: frame carrying an error", func(t *testing.T) {
		bad := New(Column{Name: "a", Values: []Value{Num(1)}}).Select("corge")
		if _, err := json.Marshal(bad); err == nil {
			t.Errorf("json.Marshal(DataFrame) err = nil, want error")
		}
	})
}

func TestDataFrame_UnmarshalJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		df := New(
			Column{Name: "a", Values: []Value{Num(1), Absent, Num(3)}},
			Column{Name: "b", Values: []Value{Str("x"), Bool(true), Obj(map[string]interface{}{"k": 1.0})}},
		).SetName("t")
		df.index = []int{5, 6, 7}
		b, err := json.Marshal(df)
		if err != nil {
			t.Fatalf("json.Marshal(DataFrame) err = %v, want nil", err)
		}
		got := &DataFrame{}
		if err := json.Unmarshal(b, got); err != nil {
			t.Fatalf("json.Unmarshal(DataFrame) err = %v, want nil", err)
		}
		if !EqualDataFrames(got, df) {
			t.Errorf("round trip = %v, want %v", got, df)
			diff, _ := messagediff.PrettyDiff(got, df)
			t.Errorf("%s", diff)
		}
	})
	t.Run("empty frame round trip", func(t *testing.T) {
		df := New()
		b, _ := json.Marshal(df)
		got := &DataFrame{}
		if err := json.Unmarshal(b, got); err != nil {
			t.Fatalf("json.Unmarshal(DataFrame) err = %v, want nil", err)
		}
		if !EqualDataFrames(got, df) {
			t.Errorf("round trip = %v, want %v", got, df)
		}
	})
	t.Run("fail: column length does not match index", func(t *testing.T) {
		got := &DataFrame{}
		err := json.Unmarshal([]byte(`{"index":[0,1],"columns":[{"name":"a","values":[{"kind":"number","data":1}]}]}`), got)
		if !errors.Is(err, ErrLengthMismatch) {
			t.Errorf("json.Unmarshal(DataFrame) err = %v, want ErrLengthMismatch", err)
		}
	})
	t.Run("fail: duplicate column names", func(t *testing.T) {
		got := &DataFrame{}
		err := json.Unmarshal([]byte(`{"index":[0],"columns":[`+
			`{"name":"a","values":[{"kind":"number","data":1}]},`+
			`{"name":"a","values":[{"kind":"number","data":2}]}]}`), got)
		if !errors.Is(err, ErrDuplicateColumn) {
			t.Errorf("json.Unmarshal(DataFrame) err = %v, want ErrDuplicateColumn", err)
		}
	})
}

func TestDataFrame_Records(t *testing.T) {
	df := New(
		Column{Name: "name", Values: []Value{Str("a"), Str("b")}},
		Column{Name: "score", Values: []Value{Num(1.5), Absent}},
		Column{Name: "meta", Values: []Value{Obj(map[string]interface{}{"k": 1.0}), Bool(true)}},
	)
	df.index = []int{10, 11}
	type args struct {
		includeIndex bool
	}
	tests := []struct {
		name string
		args args
		want [][]string
	}{
		{"with index", args{true}, [][]string{
			{"index", "name", "score", "meta"},
			{"10", "a", "1.5", `{"k":1}`},
			{"11", "b", "n/a", "true"},
		}},
		{"without index", args{false}, [][]string{
			{"name", "score", "meta"},
			{"a", "1.5", `{"k":1}`},
			{"b", "n/a", "true"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := df.Records(tt.args.includeIndex); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DataFrame.Records() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDataFrame_InterfaceRecords(t *testing.T) {
	df := New(
		Column{Name: "name", Values: []Value{Str("a"), Str("b")}},
		Column{Name: "score", Values: []Value{Num(1.5), Absent}},
	)
	got := df.InterfaceRecords(true)
	want := [][]interface{}{
		{"index", "name", "score"},
		{0, "a", 1.5},
		{1, "b", nil},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DataFrame.InterfaceRecords() = %v, want %v", got, want)
	}
	got = df.InterfaceRecords(false)
	want = [][]interface{}{
		{"name", "score"},
		{"a", 1.5},
		{"b", nil},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DataFrame.InterfaceRecords() = %v, want %v", got, want)
	}
}

func TestDataFrame_ToRecords(t *testing.T) {
	df := New(
		Column{Name: "a", Values: []Value{Num(1), Absent}},
		Column{Name: "b", Values: []Value{Str("x"), Bool(true)}},
	)
	got := df.ToRecords()
	want := []map[string]interface{}{
		{"a": 1.0, "b": "x"},
		{"a": nil, "b": true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DataFrame.ToRecords() = %v, want %v", got, want)
	}
	t.Run("round trips through FromRecords", func(t *testing.T) {
		back := FromRecords(df.ToRecords())
		if !EqualDataFrames(back, df) {
			t.Errorf("FromRecords(ToRecords()) = %v, want %v", back, df)
		}
	})
}

func TestDataFrame_EqualRecords(t *testing.T) {
	df := New(Column{Name: "a", Values: []Value{Num(1), Num(2)}})
	want := [][]string{
		{"index", "a"},
		{"0", "1"},
		{"1", "2"},
	}
	eq, _ := df.EqualRecords(want, true)
	if !eq {
		t.Errorf("DataFrame.EqualRecords() = false, want true")
	}
	want[2][1] = "99"
	eq, diffs := df.EqualRecords(want, true)
	if eq {
		t.Errorf("DataFrame.EqualRecords() = true, want false")
	}
	if diffs == nil {
		t.Errorf("DataFrame.EqualRecords() diffs = nil, want a report")
	}
}

func TestEqualDataFrames(t *testing.T) {
	df := New(
		Column{Name: "a", Values: []Value{Num(1), Absent}},
	).SetName("t")
	if !EqualDataFrames(df, df.Copy()) {
		t.Errorf("EqualDataFrames() = false for a copy, want true")
	}
	if EqualDataFrames(df, df.Copy().SetName("other")) {
		t.Errorf("EqualDataFrames() = true across names, want false")
	}
	if EqualDataFrames(df, df.Head(1)) {
		t.Errorf("EqualDataFrames() = true across shapes, want false")
	}
	if !EqualDataFrames(nil, nil) {
		t.Errorf("EqualDataFrames(nil, nil) = false, want true")
	}
	if EqualDataFrames(df, nil) {
		t.Errorf("EqualDataFrames(df, nil) = true, want false")
	}
}
