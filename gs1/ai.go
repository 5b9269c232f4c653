// Package gs1 parses and validates GS1 application identifier element
// strings as carried by GS1-128 symbols.
package gs1

import "fmt"

type dataLength struct {
	variable bool
	length   int
}

var twoDigitDataLength map[string]dataLength
var threeDigitDataLength map[string]dataLength
var threeDigitPlusDigitDataLength map[string]dataLength
var fourDigitDataLength map[string]dataLength

func init() {
	twoDigitDataLength = map[string]dataLength{
		"00": {false, 18}, "01": {false, 14}, "02": {false, 14},
		"10": {true, 20}, "11": {false, 6}, "12": {false, 6},
		"13": {false, 6}, "15": {false, 6}, "16": {false, 6},
		"17": {false, 6}, "20": {false, 2}, "21": {true, 20},
		"22": {true, 20}, "30": {true, 8}, "37": {true, 8},
	}
	for i := 90; i <= 99; i++ {
		twoDigitDataLength[fmt.Sprintf("%d", i)] = dataLength{true, 30}
	}

	threeDigitDataLength = map[string]dataLength{
		"235": {true, 28}, "240": {true, 30}, "241": {true, 30},
		"242": {true, 6}, "243": {true, 20}, "250": {true, 30},
		"251": {true, 30}, "253": {true, 30}, "254": {true, 20},
		"255": {true, 25}, "400": {true, 30}, "401": {true, 30},
		"402": {false, 17}, "403": {true, 30},
		"410": {false, 13}, "411": {false, 13}, "412": {false, 13},
		"413": {false, 13}, "414": {false, 13}, "415": {false, 13},
		"416": {false, 13}, "417": {false, 13},
		"420": {true, 20}, "421": {true, 15}, "422": {false, 3},
		"423": {true, 15}, "424": {false, 3}, "425": {true, 15},
		"426": {false, 3}, "427": {true, 3},
		"710": {true, 20}, "711": {true, 20}, "712": {true, 20},
		"713": {true, 20}, "714": {true, 20}, "715": {true, 20},
	}

	threeDigitPlusDigitDataLength = map[string]dataLength{}
	for i := 310; i <= 316; i++ {
		threeDigitPlusDigitDataLength[fmt.Sprintf("%d", i)] = dataLength{false, 6}
	}
	for i := 320; i <= 337; i++ {
		threeDigitPlusDigitDataLength[fmt.Sprintf("%d", i)] = dataLength{false, 6}
	}
	for i := 340; i <= 357; i++ {
		threeDigitPlusDigitDataLength[fmt.Sprintf("%d", i)] = dataLength{false, 6}
	}
	for i := 360; i <= 369; i++ {
		threeDigitPlusDigitDataLength[fmt.Sprintf("%d", i)] = dataLength{false, 6}
	}
	threeDigitPlusDigitDataLength["390"] = dataLength{true, 15}
	threeDigitPlusDigitDataLength["391"] = dataLength{true, 18}
	threeDigitPlusDigitDataLength["392"] = dataLength{true, 15}
	threeDigitPlusDigitDataLength["393"] = dataLength{true, 18}
	threeDigitPlusDigitDataLength["394"] = dataLength{false, 4}
	threeDigitPlusDigitDataLength["395"] = dataLength{false, 6}
	threeDigitPlusDigitDataLength["703"] = dataLength{true, 30}
	threeDigitPlusDigitDataLength["723"] = dataLength{true, 30}

	fourDigitDataLength = map[string]dataLength{
		"4300": {true, 35}, "4301": {true, 35}, "4302": {true, 70},
		"4303": {true, 70}, "4304": {true, 70}, "4305": {true, 70},
		"4306": {true, 70}, "4307": {false, 2}, "4308": {true, 30},
		"4309": {false, 20}, "4310": {true, 35}, "4311": {true, 35},
		"4312": {true, 70}, "4313": {true, 70}, "4314": {true, 70},
		"4315": {true, 70}, "4316": {true, 70}, "4317": {false, 2},
		"4318": {true, 20}, "4319": {true, 30}, "4320": {true, 35},
		"4321": {false, 1}, "4322": {false, 1}, "4323": {false, 1},
		"4324": {false, 10}, "4325": {false, 10}, "4326": {false, 6},
		"7001": {false, 13}, "7002": {true, 30}, "7003": {false, 10},
		"7004": {true, 4}, "7005": {true, 12}, "7006": {false, 6},
		"7007": {true, 12}, "7008": {true, 3}, "7009": {true, 10},
		"7010": {true, 2}, "7011": {true, 10},
		"7020": {true, 20}, "7021": {true, 20}, "7022": {true, 20},
		"7023": {true, 30}, "7040": {false, 4}, "7240": {true, 20},
		"8001": {false, 14}, "8002": {true, 20}, "8003": {true, 30},
		"8004": {true, 30}, "8005": {false, 6}, "8006": {false, 18},
		"8007": {true, 34}, "8008": {true, 12}, "8009": {true, 50},
		"8010": {true, 30}, "8011": {true, 12}, "8012": {true, 20},
		"8013": {true, 25}, "8017": {false, 18}, "8018": {false, 18},
		"8019": {true, 10}, "8020": {true, 25}, "8026": {false, 18},
		"8100": {false, 6}, "8101": {false, 10}, "8102": {false, 2},
		"8110": {true, 70}, "8111": {false, 4}, "8112": {true, 70},
		"8200": {true, 70},
	}
}

// lookupPrefix finds the AI that s starts with. It returns the AI's length
// in digits and the data length rule for it.
func lookupPrefix(s string) (int, dataLength, bool) {
	if len(s) < 2 {
		return 0, dataLength{}, false
	}
	if dl, ok := twoDigitDataLength[s[:2]]; ok {
		return 2, dl, true
	}
	if len(s) < 3 {
		return 0, dataLength{}, false
	}
	if dl, ok := threeDigitDataLength[s[:3]]; ok {
		return 3, dl, true
	}
	if len(s) < 4 {
		return 0, dataLength{}, false
	}
	if dl, ok := threeDigitPlusDigitDataLength[s[:3]]; ok && isDigit(s[3]) {
		return 4, dl, true
	}
	if dl, ok := fourDigitDataLength[s[:4]]; ok {
		return 4, dl, true
	}
	return 0, dataLength{}, false
}

// lookupAI resolves a complete AI, as written between parentheses.
func lookupAI(ai string) (dataLength, bool) {
	for i := 0; i < len(ai); i++ {
		if !isDigit(ai[i]) {
			return dataLength{}, false
		}
	}
	n, dl, ok := lookupPrefix(ai)
	if !ok || n != len(ai) {
		return dataLength{}, false
	}
	return dl, true
}

// numericAI reports whether the AI's data must be all digits.
func numericAI(ai string) bool {
	switch {
	case ai[0] == '0', ai[0] == '1' && ai != "10", ai == "20":
		return true
	case len(ai) == 4 && ai[:2] >= "31" && ai[:2] <= "36":
		return true
	case len(ai) == 4 && (ai[:3] == "390" || ai[:3] == "391" || ai[:3] == "392" || ai[:3] == "393" || ai[:3] == "394" || ai[:3] == "395"):
		return true
	case len(ai) == 3 && ai[:2] == "41", ai == "422", ai == "424", ai == "426":
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
