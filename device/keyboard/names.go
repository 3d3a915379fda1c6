package keyboard

// CodeName maps soft codes to display names.
var CodeName = map[SoftCode]string{
	CodeA: "A", CodeB: "B", CodeC: "C", CodeD: "D", CodeE: "E", CodeF: "F",
	CodeG: "G", CodeH: "H", CodeI: "I", CodeJ: "J", CodeK: "K", CodeL: "L",
	CodeM: "M", CodeN: "N", CodeO: "O", CodeP: "P", CodeQ: "Q", CodeR: "R",
	CodeS: "S", CodeT: "T", CodeU: "U", CodeV: "V", CodeW: "W", CodeX: "X",
	CodeY: "Y", CodeZ: "Z",

	Code0: "0", Code1: "1", Code2: "2", Code3: "3", Code4: "4",
	Code5: "5", Code6: "6", Code7: "7", Code8: "8", Code9: "9",

	CodeEnter:     "Enter",
	CodeExecute:   "Execute",
	CodeBackspace: "Backspace",
	CodeDelete:    "Delete",
	CodeSpace:     "Space",
	CodeTab:       "Tab",
	CodeEscape:    "Escape",
	CodeBreak:     "Break",

	CodeUp:    "Up",
	CodeDown:  "Down",
	CodeLeft:  "Left",
	CodeRight: "Right",

	CodeShift: "Shift",
	CodeCtrl:  "Ctrl",
	CodeAlt:   "Alt",

	CodeF1: "F1", CodeF2: "F2", CodeF3: "F3", CodeF4: "F4", CodeF5: "F5",

	CodeMenu:  "Menu",
	CodePaste: "Paste",

	CodeBtnA: "BtnA",
	CodeBtnB: "BtnB",
}

var codeByName = func() map[string]SoftCode {
	m := make(map[string]SoftCode, len(CodeName))
	for code, name := range CodeName {
		m[name] = code
	}
	return m
}()

// CodeByName resolves a display name back to its soft code.
func CodeByName(name string) (SoftCode, bool) {
	sc, ok := codeByName[name]
	return sc, ok
}
