package ndarray

import "testing"

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		n     int
	}{
		{Shape{}, 1}, // scalar
		{Shape{0}, 0},
		{Shape{1}, 1},
		{Shape{3, 4}, 12},
		{Shape{2, 0, 5}, 0},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.n {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.n)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate({2,3}) = %v, want nil", err)
	}
	if err := (Shape{0}).Validate(); err != nil {
		t.Errorf("Validate({0}) = %v, want nil (empty arrays are legal)", err)
	}
	if err := (Shape{2, -1}).Validate(); err == nil {
		t.Error("Validate({2,-1}) = nil, want error")
	}
}

func TestShapeEqualAndClone(t *testing.T) {
	s := Shape{2, 3}
	if !s.Equal(Shape{2, 3}) {
		t.Error("equal shapes reported unequal")
	}
	if s.Equal(Shape{3, 2}) || s.Equal(Shape{2, 3, 1}) {
		t.Error("unequal shapes reported equal")
	}

	c := s.Clone()
	c[0] = 9
	if s[0] != 2 {
		t.Error("Clone shares storage with original")
	}
}

func TestComputeStrides(t *testing.T) {
	tests := []struct {
		shape   Shape
		strides []int
	}{
		{Shape{}, []int{}},
		{Shape{5}, []int{1}},
		{Shape{2, 3}, []int{3, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}

	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.strides) {
			t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.strides)
			continue
		}
		for i := range got {
			if got[i] != tt.strides[i] {
				t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.strides)
				break
			}
		}
	}
}
