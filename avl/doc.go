// Copyright 2025 Naren Yellavula
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

/*
Package avl implements a height-balanced binary search tree over int64 keys.

The balancing engine (height bookkeeping, rotations, the four-case rebalance and
the recursive insert/delete passes) is written once against Store, a small
contract for reading and writing node fields through a handle. Two stores back
it:

  - RefStore: heap nodes linked by pointers, handle type *Node, absent is nil.
  - ArenaStore: parallel slices of keys, heights and child slot indices,
    handle type Handle, absent is NoHandle. Slots are recycled through a free
    list and growth doubles capacity without renumbering any slot.

Duplicate keys are accepted and routed to the right on insert. A rotation can
then place an equal key in a left subtree, so the ordering guarantee is
left <= node <= right; for distinct keys it is the usual strict ordering.

A Tree is not safe for concurrent use. Callers that share one across
goroutines must guard every call with a single mutex.
*/
package avl
