package codec

import "testing"

func TestInt64RoundTrip(t *testing.T) {
	c := Int64()
	buf := make([]byte, c.Size())
	c.Encode(-12345, buf)
	if got := c.Decode(buf); got != -12345 {
		t.Fatalf("Decode = %d, want -12345", got)
	}
}

func TestUint64RoundTrip(t *testing.T) {
	c := Uint64()
	buf := make([]byte, c.Size())
	c.Encode(18446744073709551615, buf)
	if got := c.Decode(buf); got != 18446744073709551615 {
		t.Fatalf("Decode = %d, want max uint64", got)
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	c := Float64()
	buf := make([]byte, c.Size())
	c.Encode(3.14159, buf)
	if got := c.Decode(buf); got != 3.14159 {
		t.Fatalf("Decode = %v, want 3.14159", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	c := String(8)
	buf := make([]byte, c.Size())
	c.Encode("hello", buf)
	if got := c.Decode(buf); got != "hello" {
		t.Fatalf("Decode = %q, want %q", got, "hello")
	}
}

func TestStringTruncatesToWidth(t *testing.T) {
	c := String(4)
	buf := make([]byte, c.Size())
	c.Encode("abcdefgh", buf)
	if got := c.Decode(buf); got != "abcd" {
		t.Fatalf("Decode = %q, want %q", got, "abcd")
	}
}

func TestStringEmpty(t *testing.T) {
	c := String(4)
	buf := make([]byte, c.Size())
	c.Encode("", buf)
	if got := c.Decode(buf); got != "" {
		t.Fatalf("Decode = %q, want empty string", got)
	}
}
