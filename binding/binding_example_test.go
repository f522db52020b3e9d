// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package binding

import (
	"context"
	"fmt"
	"time"
)

type serverConfig struct {
	Addr    string
	Timeout time.Duration
	Origins []string
}

func (c *serverConfig) Bindings() Descriptor {
	return Prefix("HTTP_",
		Field("ADDR", &c.Addr, Default(":8080")),
		Field("TIMEOUT", &c.Timeout, Required()),
		Field("ORIGINS", &c.Origins),
	)
}

func ExampleBindTarget() {
	store := Map{
		"HTTP_TIMEOUT": "30s",
		"HTTP_ORIGINS": "https://a.example, https://b.example",
	}

	var cfg serverConfig
	err := BindTarget(context.Background(), store, &cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cfg.Addr)
	fmt.Println(cfg.Timeout)
	fmt.Println(cfg.Origins)

	// Output:
	// :8080
	// 30s
	// [https://a.example https://b.example]
}
