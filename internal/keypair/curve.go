package keypair

// Curve is the elliptic curve family a coin uses for its keys and signatures.
type Curve uint32

const (
	CurveSecp256k1 Curve = iota
	CurveEd25519
	CurveEd25519Blake2bNano
	// CurveCurve25519Waves is the Waves specific curve25519.
	CurveCurve25519Waves
	CurveNist256p1
	// CurveEd25519ExtendedCardano is the Cardano specific ed25519 extended key.
	CurveEd25519ExtendedCardano
	CurveStarkex
)

var curveNames = map[Curve]string{
	CurveSecp256k1:              "secp256k1",
	CurveEd25519:                "ed25519",
	CurveEd25519Blake2bNano:     "ed25519-blake2b-nano",
	CurveCurve25519Waves:        "curve25519",
	CurveNist256p1:              "nist256p1",
	CurveEd25519ExtendedCardano: "ed25519-cardano-seed",
	CurveStarkex:                "starkex",
}

// CurveFromRaw returns false if the given code is not a known curve.
func CurveFromRaw(raw uint32) (Curve, bool) {
	curve := Curve(raw)
	if _, ok := curveNames[curve]; !ok {
		return 0, false
	}
	return curve, true
}

// CurveFromName looks a curve up by its registry name.
func CurveFromName(name string) (Curve, bool) {
	for curve, n := range curveNames {
		if n == name {
			return curve, true
		}
	}
	return 0, false
}

func (c Curve) String() string {
	if name, ok := curveNames[c]; ok {
		return name
	}
	return "unknown"
}

// PublicKeyType identifies the encoding of a public key.
type PublicKeyType uint32

const (
	PublicKeyTypeSecp256k1 PublicKeyType = iota
	PublicKeyTypeSecp256k1Extended
	PublicKeyTypeNist256k1
	PublicKeyTypeNist256k1Extended
	PublicKeyTypeEd25519
	PublicKeyTypeEd25519Blake2b
	// PublicKeyTypeCurve25519Waves is the Waves specific public key.
	PublicKeyTypeCurve25519Waves
	// PublicKeyTypeEd25519ExtendedCardano is the Cardano specific extended public key.
	PublicKeyTypeEd25519ExtendedCardano
	PublicKeyTypeStarkex
)

var publicKeyTypeNames = map[PublicKeyType]string{
	PublicKeyTypeSecp256k1:              "secp256k1",
	PublicKeyTypeSecp256k1Extended:      "secp256k1Extended",
	PublicKeyTypeNist256k1:              "nist256p1",
	PublicKeyTypeNist256k1Extended:      "nist256p1Extended",
	PublicKeyTypeEd25519:                "ed25519",
	PublicKeyTypeEd25519Blake2b:         "ed25519Blake2b",
	PublicKeyTypeCurve25519Waves:        "curve25519",
	PublicKeyTypeEd25519ExtendedCardano: "ed25519Cardano",
	PublicKeyTypeStarkex:                "starkex",
}

// PublicKeyTypeFromRaw returns false if the given code is not a known public key type.
func PublicKeyTypeFromRaw(raw uint32) (PublicKeyType, bool) {
	ty := PublicKeyType(raw)
	if _, ok := publicKeyTypeNames[ty]; !ok {
		return 0, false
	}
	return ty, true
}

// PublicKeyTypeFromName looks a public key type up by its registry name.
func PublicKeyTypeFromName(name string) (PublicKeyType, bool) {
	for ty, n := range publicKeyTypeNames {
		if n == name {
			return ty, true
		}
	}
	return 0, false
}

func (t PublicKeyType) String() string {
	if name, ok := publicKeyTypeNames[t]; ok {
		return name
	}
	return "unknown"
}
