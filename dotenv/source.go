// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dotenv

import "github.com/z5labs/envbind/config"

var _ config.Source = (*Dotenv)(nil)

// Apply implements the config.Source interface. Every merged entry is set
// in key order and dotted keys, e.g. "db.host", address nested values.
func (d *Dotenv) Apply(store config.Store) error {
	for _, e := range d.Entries() {
		err := store.Set(e.Key, e.Value)
		if err != nil {
			return err
		}
	}
	return nil
}
