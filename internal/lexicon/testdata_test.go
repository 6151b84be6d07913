package lexicon

// dictionaryDoc mirrors the layout of a Russian Wiktionary article: a
// templated language heading, meta subheadings only, and examples embedded
// in definition lines.
const dictionaryDoc = `{{Омонимы|дом}}
= {{-ru-}} =

=== Морфологические и синтаксические свойства ===
{{сущ ru m ina 1c(1)|основа=дом|слоги={{по-слогам|дом}}}}

=== Произношение ===
{{transcriptions-ru|дом|домы́}}

=== Семантические свойства ===

==== Значение ====
# [[жилой|жилое]] [[здание]] {{пример|Дом стоял на горе.|Пушкин}}
# {{помета|собир.}} [[семья]] {{пример|Весь дом спал.}}

==== Синонимы ====
# [[строение]], [[жилище]]
# [[семья]]

==== Антонимы ====
# —

=== Этимология ===
Происходит от {{этим|праслав.|*domъ}}.

= {{-uk-}} =

=== Морфологические и синтаксические свойства ===
{{сущ uk m ina 1a}}

==== Значение ====
# [[будинок]]
`

// headingDoc uses plain language names and a part-of-speech subheading.
const headingDoc = `== English ==
=== Noun ===
# a building

== Russian ==
=== Существительное ===
==== Meaning ====
# жилое здание
==== Synonyms ====
* строение
* жилище

== Ukrainian ==
=== Іменник ===
==== Meaning ====
# будинок
`
