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

// Pause emits the x86 PAUSE instruction, the architectural hint for spin
// loops: it reduces the pipeline resources a speculatively-spinning core
// burns and avoids the memory-order mis-speculation penalty on exit from
// the loop. x86 is strongly ordered, so unlike arm64 this is the only
// platform-specific primitive besides FullBarrier that needs real
// per-architecture code.
func Pause()

// FullBarrier issues an MFENCE, a full fence ordering all prior loads and
// stores against all subsequent ones across every core.
func FullBarrier()

// ReadBarrier orders prior loads against subsequent loads. x86's strong
// memory model makes this a compiler-only reordering barrier: no loads can
// be observed out of program order on this architecture to begin with.
func ReadBarrier() { compilerBarrier() }

// WriteBarrier orders prior stores against subsequent stores. As with
// ReadBarrier, x86 needs no fence instruction for this, only a barrier
// against compiler reordering.
func WriteBarrier() { compilerBarrier() }
