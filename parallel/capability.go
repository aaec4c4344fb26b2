package parallel

// Number is satisfied by every built-in integer and floating-point type and
// by types defined over them. It is the capability Sum and SumOf require.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Addable is implemented by element types that know how to add themselves,
// such as money or vector types. Add must be associative and must not mutate
// the receiver or its argument.
type Addable[T any] interface {
	Add(T) T
}
