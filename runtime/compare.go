package runtime

// Binary comparison protocol. Equal and Less are primitive: they compare
// built-in kinds by value and otherwise defer to the left operand's
// __eq__ / __lt__ of arity one. The four derived relations are defined in
// terms of Equal and Less only and never consult further dunder methods.

// Equal compares two values for equality. Two empty holders are equal.
func Equal(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	if lhs.Empty() && rhs.Empty() {
		return true, nil
	}
	if l, ok := TryAs[*Number](lhs); ok {
		if r, ok := TryAs[*Number](rhs); ok {
			return l.GetValue() == r.GetValue(), nil
		}
	}
	if l, ok := TryAs[*String](lhs); ok {
		if r, ok := TryAs[*String](rhs); ok {
			return l.GetValue() == r.GetValue(), nil
		}
	}
	if l, ok := TryAs[*Bool](lhs); ok {
		if r, ok := TryAs[*Bool](rhs); ok {
			return l.GetValue() == r.GetValue(), nil
		}
	}
	if l, ok := TryAs[*ClassInstance](lhs); ok && l.HasMethod("__eq__", 1) {
		return callComparison(l, "__eq__", rhs, ctx)
	}
	return false, errorf("cannot compare objects for equality")
}

// Less compares two values for strict ordering. Strings order
// lexicographically by byte value; for booleans, False < True.
func Less(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	if l, ok := TryAs[*Number](lhs); ok {
		if r, ok := TryAs[*Number](rhs); ok {
			return l.GetValue() < r.GetValue(), nil
		}
	}
	if l, ok := TryAs[*String](lhs); ok {
		if r, ok := TryAs[*String](rhs); ok {
			return l.GetValue() < r.GetValue(), nil
		}
	}
	if l, ok := TryAs[*Bool](lhs); ok {
		if r, ok := TryAs[*Bool](rhs); ok {
			return !l.GetValue() && r.GetValue(), nil
		}
	}
	if l, ok := TryAs[*ClassInstance](lhs); ok && l.HasMethod("__lt__", 1) {
		return callComparison(l, "__lt__", rhs, ctx)
	}
	return false, errorf("cannot compare objects for less")
}

func NotEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	equal, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !equal, nil
}

func Greater(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	if less {
		return false, nil
	}
	equal, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !equal, nil
}

func LessOrEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	if less {
		return true, nil
	}
	return Equal(lhs, rhs, ctx)
}

func GreaterOrEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !less, nil
}

func callComparison(receiver *ClassInstance, dunder string, rhs ObjectHolder, ctx Context) (bool, error) {
	result, err := receiver.Call(dunder, []ObjectHolder{rhs}, ctx)
	if err != nil {
		return false, err
	}
	b, ok := TryAs[*Bool](result)
	if !ok {
		return false, errorf("%s must return a Bool", dunder)
	}
	return b.GetValue(), nil
}
