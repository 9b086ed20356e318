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

package config

const generalSample = `# Seed of the random source. Equal seeds and parameters yield identical
# topologies. (default 42)
seed = 42

# Directory all artifacts are written to. (default ".")
output_dir = "."
`

const populationSample = `# Number of Tier1 ASes. (default 4)
tier1 = 4

# Number of transit ASes. (default 9)
transit = 9

# Number of stub ASes. (default 37)
stub = 37

# Reject populations without Tier1 ASes. (default false)
require_tier1 = false

# Reject populations without transit ASes. (default false)
require_transit = false
`

const degreesSample = `# Inclusive [min, max] ranges the degree targets are sampled from. Tier1
# ASes peer in a full mesh and have no peering range.

# Customers of a Tier1 AS. (default [6, 10])
tier1_p2c = [6, 10]

# Peers of a transit AS. (default [2, 3])
transit_p2p = [2, 3]

# Providers plus customers of a transit AS. (default [5, 10])
transit_p2c = [5, 10]

# Peers of a stub AS. (default [0, 1])
stub_p2p = [0, 1]

# Providers of a stub AS. (default [1, 2])
stub_p2c = [1, 2]
`

const probabilitiesSample = `# Probability that a stub also considers Tier1 providers. (default 0.1)
stub_to_tier1 = 0.1

# Probability that a stub also considers transit peers. (default 0.1)
stub_to_transit = 0.1

# Probability that an AS anchors an optional exchange point. (default 0.1)
same = 0.1

# Probability that a candidate joins an optional exchange point.
# (default 0.05)
cross = 0.05
`

const exportSample = `# Offset added to every IXP identifier in the artifacts. (default 0)
ixp_offset = 0

# Replace existing artifacts. (default false)
overwrite = false

# Artifacts to write (miniinternet|csv|text). (default all)
formats = ["miniinternet", "csv", "text"]
`

const snapshotSample = `# Snapshot location. The extension selects the format (.json, .yaml, .yml,
# .db, .sqlite). Relative paths are resolved against general.output_dir.
# (default "snapshot.json")
path = "snapshot.json"
`
