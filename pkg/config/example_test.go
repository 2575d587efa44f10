package config_test

import (
	"fmt"

	"github.com/ajitpratap0/arena/pkg/config"
)

// ExampleNewDefault demonstrates the defaults used when no file is given.
func ExampleNewDefault() {
	cfg := config.NewDefault()

	fmt.Printf("Containers: %v\n", cfg.Workload.Containers())
	fmt.Printf("Capacity: %d\n", cfg.Workload.Capacity)
	fmt.Printf("Size: %d\n", cfg.Workload.Size)

	// Output:
	// Containers: [builtin map list]
	// Capacity: 10
	// Size: 10
}

// ExampleConfig_Validate shows a configuration being rejected.
func ExampleConfig_Validate() {
	cfg := config.NewDefault()
	cfg.Workload.Size = 30

	fmt.Println(cfg.Validate())

	// Output:
	// config: size overflows uint64 factorials
}
