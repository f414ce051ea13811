package token

import "testing"

func TestIs(t *testing.T) {
	tok := Token{Kind: Identifier, Ident: "Sift"}
	if !tok.Is(Identifier) {
		t.Errorf("Is(Identifier) = false, want true")
	}
	if tok.Is(Number) {
		t.Errorf("Is(Number) = true, want false")
	}
}

func TestIsIdentCaseSensitive(t *testing.T) {
	tok := Token{Kind: Identifier, Ident: "Mix"}
	if !tok.IsIdent("Mix") {
		t.Errorf("IsIdent(%q) = false, want true", "Mix")
	}
	if tok.IsIdent("mix") {
		t.Errorf("IsIdent(%q) = true, want false (case-sensitive)", "mix")
	}
}

func TestIsAnyKind(t *testing.T) {
	tok := Token{Kind: FullStop}
	if !tok.IsAnyKind(Hyphen, Colon, FullStop) {
		t.Errorf("IsAnyKind should have matched FullStop")
	}
	if tok.IsAnyKind(Hyphen, Colon) {
		t.Errorf("IsAnyKind should not have matched")
	}
}

func TestIsAnyIdent(t *testing.T) {
	tok := Token{Kind: Identifier, Ident: "Put"}
	if !tok.IsAnyIdent("Take", "Put", "Fold") {
		t.Errorf("IsAnyIdent should have matched Put")
	}
	num := Token{Kind: Number, Num: 3}
	if num.IsAnyIdent("Put") {
		t.Errorf("a Number token should never match IsAnyIdent")
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{Line: 4, Column: 7}
	if got, want := loc.String(), "4:7"; got != want {
		t.Errorf("Location.String() = %q, want %q", got, want)
	}
}

func TestTokenStringNumber(t *testing.T) {
	tok := Token{Kind: Number, Num: 42}
	if got, want := tok.String(), "42"; got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
