// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package envbind loads .env style configuration and binds it onto typed fields.
//
// The package is built from four cooperating pieces:
//
//   - dotenv: locates a source, parses it into entries and merges them with the process environment
//   - binding: decides per declared field whether the stored value, its default or a failure applies
//   - convert: turns the resolved raw string into the field's type
//   - config: layers several sources, including a loaded dotenv, into tagged structs
//
// # Basic Usage
//
// Declare the fields of a target:
//
//	type DB struct {
//	    Host     string
//	    Port     int
//	    Password string
//	}
//
//	func (db *DB) Bindings() binding.Descriptor {
//	    return binding.Prefix("DB_",
//	        binding.Field("HOST", &db.Host, binding.Default("localhost")),
//	        binding.Field("PORT", &db.Port, binding.Default("3306")),
//	        binding.Field("PASSWORD", &db.Password, binding.Required()),
//	    )
//	}
//
// Load and bind it:
//
//	var db DB
//	_, err := envbind.Load(ctx, &db, envbind.Dotenv(dotenv.Directory("./config")))
//	if err != nil {
//	    log.Fatal(err)
//	}
package envbind
