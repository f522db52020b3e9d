// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envbind

import (
	"context"
	"fmt"

	"github.com/z5labs/envbind/binding"
	"github.com/z5labs/envbind/dotenv"

	"github.com/spf13/afero"
)

type dbConfig struct {
	Host     string
	Port     int
	Password string
	Debug    bool
}

func (c *dbConfig) Bindings() binding.Descriptor {
	return binding.Prefix("DB_",
		binding.Field("HOST", &c.Host),
		binding.Field("PORT", &c.Port, binding.Default("3306")),
		binding.Field("PASSWORD", &c.Password, binding.Required()),
		binding.Field("DEBUG", &c.Debug, binding.Ignore()),
	)
}

func Example() {
	fsys := afero.NewMemMapFs()
	err := afero.WriteFile(fsys, "/app/.env", []byte("DB_HOST=localhost\nDB_PASSWORD=123\n#comment\n"), 0o644)
	if err != nil {
		fmt.Println(err)
		return
	}

	var cfg dbConfig
	_, err = Load(
		context.Background(),
		&cfg,
		Dotenv(
			dotenv.Filesystem(fsys),
			dotenv.Directory("/app"),
			dotenv.Environ(func() []string { return nil }),
		),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%+v\n", cfg)

	// Output:
	// {Host:localhost Port:3306 Password:123 Debug:false}
}

func Example_requiredValueMissing() {
	fsys := afero.NewMemMapFs()
	err := afero.WriteFile(fsys, "/app/.env", []byte("DB_HOST=localhost\n#comment\n"), 0o644)
	if err != nil {
		fmt.Println(err)
		return
	}

	var cfg dbConfig
	_, err = Load(
		context.Background(),
		&cfg,
		Dotenv(
			dotenv.Filesystem(fsys),
			dotenv.Directory("/app"),
			dotenv.Environ(func() []string { return nil }),
		),
	)
	fmt.Println(err)

	// Output:
	// failed to bind target: required value missing for key: DB_PASSWORD
}
