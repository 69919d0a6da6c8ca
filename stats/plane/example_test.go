package plane_test

import (
	"fmt"

	"github.com/cwbudde/algo-conv2d/stats/plane"
)

func ExampleCalculate() {
	s := plane.Calculate([]float64{0, 0.5, 1, 1.5})
	fmt.Println(s)
	// Output: mean=0.75 std=0.559 min=0 max=1.5 clipped=25.00%
}
