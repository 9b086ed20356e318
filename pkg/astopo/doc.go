// Copyright 2026 The mini-internet-simulation Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package astopo contains the AS-level topology model: Autonomous Systems,
// Internet Exchange Points and the relations between them.
//
// # Relations
//
// Three relation kinds exist:
//
//   - provider-to-customer (P2C), created with ConnectP2C,
//   - peer-to-peer (P2P), created with ConnectP2P,
//   - IXP membership, created with Topology.AddIXP.
//
// Every relation is mirrored on both endpoints by a single call, so a topology
// never contains half-applied edges. The relation accessors on AS and IXP
// return the internal slices; callers must not modify them.
//
// # Identifiers
//
// AS and IXP identifiers are assigned monotonically by a Sequence. AS
// identifiers are dense (1..N); IXP identifiers are strictly increasing but may
// contain gaps.
package astopo
