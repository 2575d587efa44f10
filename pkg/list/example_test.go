package list_test

import (
	"fmt"
	"os"

	"github.com/ajitpratap0/arena/pkg/list"
	"github.com/ajitpratap0/arena/pkg/pool"
)

func Example() {
	l := list.New(pool.New[int](3))
	defer l.Close()

	for _, v := range []int{1, 1, 2, 6} {
		if err := l.PushBack(v); err != nil {
			fmt.Println("push failed:", pool.IsExhausted(err))
		}
	}
	_ = l.Print(os.Stdout)

	// Output:
	// push failed: true
	// 1. Value: 1
	// 2. Value: 1
	// 3. Value: 2
}
