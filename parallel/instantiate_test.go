package parallel

// Every exported generic instantiated with element, key and accumulator
// types other than int, so a signature that cannot be instantiated fails
// the build of this package's tests.
var _ = []any{
	All[string], Any[string], None[string], TryAll[string], TryAny[string], TryNone[string],
	Count[*scored], TryCount[*scored],

	Sum[float32], Sum[uint8], Sum[cents], SumOf[string, float64], SumAddable[cents],
	Fold[string], TryFold[string], FoldOf[string, uint64], TryFoldOf[scored, float64], FoldIndexed[cents],

	Min[string], Max[float64], MinOrNull[uint], MaxOrNull[cents],
	MinFunc[scored], MaxFunc[scored],
	MinBy[scored, string], MaxBy[scored, float32], MinByOrNull[string, int8], MaxByOrNull[string, int8],
	MinOf[scored, string], MaxOf[scored, float64], MinOfOrNull[string, uint], MaxOfOrNull[string, uint],
	MinMax[string], MinMaxOrNull[float64],
	MinMaxBy[scored, string], MinMaxByOrNull[scored, float64], MinMaxOf[string, int64], MinMaxOfOrNull[string, string],

	Map[string, []byte], TryMap[scored, string], MapIndexed[string, int], MapNotNull[string, float64], MapIndexedNotNull[scored, string],
	Filter[string], TryFilter[string], FilterNot[scored], FilterIndexed[cents], FilterNotNil[scored],
	FlatMap[string, rune], FlatMapIndexed[scored, string],

	First[string], FirstOrNull[scored], Find[cents], TryFirstOrNull[string],
	FirstNotNullOf[string, int], FirstNotNullOfOrNull[scored, string],
	Last[string], LastOrNull[scored], LastNotNullOf[string, float32], LastNotNullOfOrNull[cents, string],

	Associate[scored, string, int], AssociateBy[scored, int], AssociateWith[string, scored],

	Slice[string], Seq[scored], FromIterator[cents], IteratorOf[string],
}
