package rangeparser_test

import (
	"fmt"

	rangeparser "github.com/always-cache/range-parser"
)

func ExampleParse() {
	set, err := rangeparser.Parse(1000, "bytes=0-499,-100")
	if err != nil {
		fmt.Println(rangeparser.CodeOf(err))
		return
	}
	fmt.Println(set.Unit, set.Ranges)
	// Output: bytes [0-499 900-999]
}

func ExampleParseWithOptions() {
	set, _ := rangeparser.ParseWithOptions(150, "bytes=-1,20-100,0-1,101-120", rangeparser.Options{Combine: true})
	fmt.Println(set.Ranges)
	// Output: [149-149 20-120 0-1]
}

func ExampleCodeOf() {
	_, err := rangeparser.Parse(200, "bytes=500-600")
	fmt.Println(int(rangeparser.CodeOf(err)), err)
	// Output: -1 range-parser: range not satisfiable
}
