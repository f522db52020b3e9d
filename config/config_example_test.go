// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/z5labs/envbind/config"
	"github.com/z5labs/envbind/dotenv"
)

func Example() {
	entries, err := dotenv.Parse([]string{
		"http.port=9090",
		"http.timeout=5s",
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	m, err := config.Read(
		config.FromYaml(strings.NewReader("http:\n  port: 8080\n  host: localhost\n")),
		dotenv.New(entries, nil, true),
		config.FromEnviron(func() []string { return []string{"IGNORED.KEY=1"} }),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	var cfg struct {
		HTTP struct {
			Host    string        `config:"host"`
			Port    int           `config:"port"`
			Timeout time.Duration `config:"timeout"`
		} `config:"http"`
	}
	err = m.Unmarshal(&cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.Timeout)

	// Output:
	// localhost 9090 5s
}
