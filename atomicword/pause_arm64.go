// Copyright 2020 Nathan Taylor (nbtaylor@gmail.com)
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package atomicword

// Pause emits the arm64 YIELD instruction, a hint to the core that it is
// in a spin-wait loop. Unlike x86, this is architecturally weaker: it does
// not by itself order memory, it only hints scheduling resources.
func Pause()

// FullBarrier issues a DMB ISH (inner-shareable data memory barrier),
// ordering all prior loads and stores against all subsequent ones across
// every core in the inner-shareable domain. arm64 is weakly ordered, so
// this is load-bearing here in a way it is not on amd64.
func FullBarrier()

// ReadBarrier issues a DMB ISHLD, a load-load/load-store barrier. arm64
// can reorder loads against later loads, so this needs a real fence,
// unlike the x86 backend's compiler-only barrier.
func ReadBarrier()

// WriteBarrier issues a DMB ISHST, a store-store barrier, ordering prior
// stores against subsequent stores on weakly-ordered arm64.
func WriteBarrier()
