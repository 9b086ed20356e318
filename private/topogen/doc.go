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

// Package topogen generates multi-tier AS topologies.
//
// Generation runs in four phases that each mutate a shared astopo.Topology:
//
//   - PopulationBuilder creates the ASes and samples their degree targets.
//   - ProviderConnector builds the provider/customer hierarchy.
//   - PeerConnector builds the peering graph.
//   - IXPConnector creates the exchange points.
//
// Generator drives the phases with a single seeded random source, so equal
// seeds and parameters yield identical topologies. Targets that cannot be met
// are lowered to the achieved degree and reported as Shortfall values. They
// are never errors.
package topogen
