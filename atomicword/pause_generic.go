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

//go:build !amd64 && !arm64

package atomicword

import "runtime"

// Pause falls back to runtime.Gosched on platforms without a dedicated
// pause-hint backend in this package.
func Pause() { runtime.Gosched() }

// FullBarrier falls back to the compiler-only barrier on platforms without
// a dedicated fence backend. sync/atomic operations on every platform Go
// supports already impose sequential consistency, so this is correct
// everywhere, just not as cheap as a native fence where one exists.
func FullBarrier() { compilerBarrier() }

// ReadBarrier falls back to the compiler-only barrier; see FullBarrier.
func ReadBarrier() { compilerBarrier() }

// WriteBarrier falls back to the compiler-only barrier; see FullBarrier.
func WriteBarrier() { compilerBarrier() }
