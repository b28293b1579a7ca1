package dice

// Percentile describes one d100 result read as tens and units digits.
// A face of 100 reads as "00".
type Percentile struct {
	Value    int
	IsDouble bool
	Is100    bool
}

// ReadPercentile interprets a d100 face. Doubles are 00, 11, 22 ... 99;
// both 0 and 100 read as 00.
func ReadPercentile(value int) Percentile {
	is100 := value == 0 || value == 100
	return Percentile{
		Value:    value,
		IsDouble: is100 || (value > 0 && value < 100 && value%11 == 0),
		Is100:    is100,
	}
}
