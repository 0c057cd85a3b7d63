/*
Package lsmcore contains the read-path core of an LSM storage engine: a
binary block format and a merging iterator which combines many sorted
sources into a single sorted, deduplicated stream.

Data Structure Documentation

Block

A block comprises of a series of entries in ascending key order,
followed by an offset index and a 2-byte entry count. All integers are
big-endian.

    Block layout:
    +---------+-------+---------+--------------+-----------------------------+
    | entry 1 |  ...  | entry n | offset index | number of entries (2 bytes) |
    +---------+-------+---------+--------------+-----------------------------+

    Offset index:
    +--------------------------+-------+--------------------------+
    | entry offset 1 (2 bytes) |  ...  | entry offset n (2 bytes) |
    +--------------------------+-------+--------------------------+

Each offset is the start position of an entry within the data section.
An empty block consists of the entry count only.

Entry

Entries written by the BlockBuilder carry a length-prefixed key and
value. Block encoding treats entries as opaque bytes.

    +----------------------+-----------+------------------------+-------------+
    | key length (2 bytes) | key bytes | value length (2 bytes) | value bytes |
    +----------------------+-----------+------------------------+-------------+

Merging

A MergeIterator accepts a list of iterators where a lower position in
the list means higher priority. If two iterators expose the same key,
only the entry of the one with the higher priority is emitted, allowing
newer layers to shadow older ones.
*/
package lsmcore
