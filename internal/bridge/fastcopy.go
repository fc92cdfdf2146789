package bridge

// FastCopy copies size bytes from src to dst. Sizes up to 16 bytes
// dispatch through a table of fixed-size copies, which the compiler
// lowers to direct loads and stores; larger sizes fall back to the
// runtime's overlap-safe move copy.
func FastCopy(dst, src []byte, size int) {
	if size <= fastCopyMax {
		copyFns[size](dst, src)
		return
	}
	copy(dst[:size], src[:size])
}

const fastCopyMax = 16

var copyFns = [fastCopyMax + 1]func(dst, src []byte){
	func(dst, src []byte) {},
	func(dst, src []byte) { copy(dst[:1], src[:1]) },
	func(dst, src []byte) { copy(dst[:2], src[:2]) },
	func(dst, src []byte) { copy(dst[:3], src[:3]) },
	func(dst, src []byte) { copy(dst[:4], src[:4]) },
	func(dst, src []byte) { copy(dst[:5], src[:5]) },
	func(dst, src []byte) { copy(dst[:6], src[:6]) },
	func(dst, src []byte) { copy(dst[:7], src[:7]) },
	func(dst, src []byte) { copy(dst[:8], src[:8]) },
	func(dst, src []byte) { copy(dst[:9], src[:9]) },
	func(dst, src []byte) { copy(dst[:10], src[:10]) },
	func(dst, src []byte) { copy(dst[:11], src[:11]) },
	func(dst, src []byte) { copy(dst[:12], src[:12]) },
	func(dst, src []byte) { copy(dst[:13], src[:13]) },
	func(dst, src []byte) { copy(dst[:14], src[:14]) },
	func(dst, src []byte) { copy(dst[:15], src[:15]) },
	func(dst, src []byte) { copy(dst[:16], src[:16]) },
}
