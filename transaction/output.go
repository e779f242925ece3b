// Copyright 2025 Nikita Bykov
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transaction

import (
	"github.com/nikita-bykov/jormungandr/address"
	"github.com/nikita-bykov/jormungandr/codec"
	"github.com/nikita-bykov/jormungandr/value"
)

// Output sends value to an address. Zero-valued outputs are invalid and are
// rejected during transaction application.
type Output struct {
	Address address.Address
	Value   value.Value
}

func (o Output) MarshalCBOR() ([]byte, error) {
	return codec.Encode([]any{o.Address.Bytes(), uint64(o.Value)})
}
